package model

import (
	"innkeep/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	CategoryTableName  = "room_categories"
	CategoryEntityName = "room_category"

	FieldID                = "id"
	FieldRoomNumber        = "room_number"
	FieldRoomType          = "room_type"
	FieldCategoryID        = "category_id"
	FieldPricePerNight     = "price_per_night"
	FieldCapacity          = "capacity"
	FieldMaintenanceStatus = "maintenance_status"
	FieldName              = "name"

	MaintenanceStatusOperational = "operational"
	MaintenanceStatusMaintenance = "maintenance"
	MaintenanceStatusClosed      = "closed"
)

type Room struct {
	ID                string  `db:"id"`
	RoomNumber        string  `db:"room_number"`
	RoomType          string  `db:"room_type"`
	CategoryID        string  `db:"category_id"`
	PricePerNight     float64 `db:"price_per_night"`
	Capacity          int     `db:"capacity"`
	Description       string  `db:"description"`
	ImageURL          string  `db:"image_url"`
	Amenities         string  `db:"amenities"`
	MaintenanceStatus string  `db:"maintenance_status"`
	model.Metadata
}

// Bookable reports whether the room can receive new bookings at all,
// regardless of dates.
func (r *Room) Bookable() bool {
	return r.MaintenanceStatus == MaintenanceStatusOperational
}

type RoomCategory struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	BasePrice float64 `db:"base_price"`
	Capacity  int     `db:"capacity"`
	model.Metadata
}
