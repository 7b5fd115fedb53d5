package dto

import (
	"github.com/google/uuid"

	"innkeep/internal/domains/room/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber        string  `json:"room_number"        validate:"required,max=20"`
	CategoryID        string  `json:"category_id"        validate:"required,uuid"`
	PricePerNight     float64 `json:"price_per_night"    validate:"required,gt=0"`
	Capacity          int     `json:"capacity"           validate:"required,gte=1"`
	Description       string  `json:"description"        validate:"omitempty"`
	ImageURL          string  `json:"image_url"          validate:"omitempty,max=500"`
	Amenities         string  `json:"amenities"          validate:"omitempty"`
	MaintenanceStatus string  `json:"maintenance_status" validate:"omitempty,oneof=operational maintenance closed"`
}

// ToModel builds a Room from the request. The room type string is resolved
// from the category by the service, categories are the source of truth.
func (c *CreateRoomRequest) ToModel(categoryName, user string) model.Room {
	status := model.MaintenanceStatusOperational
	if c.MaintenanceStatus != "" {
		status = c.MaintenanceStatus
	}

	return model.Room{
		ID:                uuid.NewString(),
		RoomNumber:        c.RoomNumber,
		RoomType:          categoryName,
		CategoryID:        c.CategoryID,
		PricePerNight:     c.PricePerNight,
		Capacity:          c.Capacity,
		Description:       c.Description,
		ImageURL:          c.ImageURL,
		Amenities:         c.Amenities,
		MaintenanceStatus: status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string  `db:"room_number"     json:"room_number"     validate:"omitempty,max=20"`
	CategoryID    string  `db:"category_id"     json:"category_id"     validate:"omitempty,uuid"`
	PricePerNight float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	Capacity      int     `db:"capacity"        json:"capacity"        validate:"omitempty,gte=1"`
	Description   string  `db:"description"     json:"description"     validate:"omitempty"`
	ImageURL      string  `db:"image_url"       json:"image_url"       validate:"omitempty,max=500"`
	Amenities     string  `db:"amenities"       json:"amenities"       validate:"omitempty"`
}

type RoomResponse struct {
	ID                string  `json:"id"`
	RoomNumber        string  `json:"room_number"`
	RoomType          string  `json:"room_type"`
	CategoryID        string  `json:"category_id"`
	PricePerNight     float64 `json:"price_per_night"`
	Capacity          int     `json:"capacity"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"image_url"`
	Amenities         string  `json:"amenities"`
	MaintenanceStatus string  `json:"maintenance_status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.CategoryID = model.CategoryID
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.ImageURL = model.ImageURL
	r.Amenities = model.Amenities
	r.MaintenanceStatus = model.MaintenanceStatus
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type CreateCategoryRequest struct {
	Name      string  `json:"name"       validate:"required,max=100"`
	BasePrice float64 `json:"base_price" validate:"required,gt=0"`
	Capacity  int     `json:"capacity"   validate:"required,gte=1"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.RoomCategory {
	return model.RoomCategory{
		ID:        uuid.NewString(),
		Name:      c.Name,
		BasePrice: c.BasePrice,
		Capacity:  c.Capacity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name      string  `db:"name"       json:"name"       validate:"omitempty,max=100"`
	BasePrice float64 `db:"base_price" json:"base_price" validate:"omitempty,gt=0"`
	Capacity  int     `db:"capacity"   json:"capacity"   validate:"omitempty,gte=1"`
}

type CategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Capacity  int     `json:"capacity"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.RoomCategory) {
	r.ID = model.ID
	r.Name = model.Name
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.RoomCategory, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
