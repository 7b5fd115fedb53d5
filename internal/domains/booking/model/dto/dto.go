package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"innkeep/internal/domains/booking/model"
	maintenanceDto "innkeep/internal/domains/maintenance/model/dto"
	roomDto "innkeep/internal/domains/room/model/dto"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

// CreateBookingRequest books either an explicit room (room_id) or any
// available room of a type (room_type). total_price is the client's own
// computation and is only trusted when the server-side quote comes out to 0.
type CreateBookingRequest struct {
	RoomID        string  `json:"room_id"        validate:"omitempty,uuid"`
	RoomType      string  `json:"room_type"      validate:"required_without=RoomID,omitempty,max=100"`
	AgentID       string  `json:"agent_id"       validate:"omitempty,uuid"`
	CustomerName  string  `json:"customer_name"  validate:"required,max=100"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"omitempty,max=30"`
	CheckIn       string  `json:"check_in"       validate:"required,datetime=2006-01-02"`
	CheckOut      string  `json:"check_out"      validate:"required,datetime=2006-01-02"`
	TotalPrice    float64 `json:"total_price"    validate:"omitempty,gte=0"`
}

func (c *CreateBookingRequest) ToModel(roomID string, checkIn, checkOut time.Time, totalPrice float64, user string) model.Booking {
	agentID := sql.NullString{}
	if c.AgentID != "" {
		agentID = sql.NullString{String: c.AgentID, Valid: true}
	}

	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        roomID,
		AgentID:       agentID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalPrice:    totalPrice,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest covers room reassignment, status transitions, customer
// detail edits, the employee read flag, and the receipt link. RoomID and
// Status are applied by the service after validation, the rest map straight
// to columns.
type UpdateBookingRequest struct {
	RoomID         string `json:"room_id"          validate:"omitempty,uuid"`
	Status         string `json:"status"           validate:"omitempty,oneof=pending confirmed cancelled"`
	CustomerName   string `db:"customer_name"     json:"customer_name"    validate:"omitempty,max=100"`
	CustomerEmail  string `db:"customer_email"    json:"customer_email"   validate:"omitempty,email"`
	CustomerPhone  string `db:"customer_phone"    json:"customer_phone"   validate:"omitempty,max=30"`
	ReceiptURL     string `db:"receipt_url"       json:"receipt_url"      validate:"omitempty,url"`
	ReadByEmployee *bool  `db:"read_by_employee"  json:"read_by_employee" validate:"omitempty"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	RoomID         string  `json:"room_id"`
	AgentID        string  `json:"agent_id,omitempty"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerPhone  string  `json:"customer_phone,omitempty"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	TotalPrice     float64 `json:"total_price"`
	Status         string  `json:"status"`
	ReceiptURL     string  `json:"receipt_url,omitempty"`
	ReadByEmployee bool    `json:"read_by_employee"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.CheckIn = model.CheckIn.Format(constant.DateFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.ReadByEmployee = model.ReadByEmployee

	if model.AgentID.Valid {
		r.AgentID = model.AgentID.String
	}

	if model.ReceiptURL.Valid {
		r.ReceiptURL = model.ReceiptURL.String
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

type GetAvailableRoomsResponse struct {
	Rooms []roomDto.RoomResponse `json:"rooms"`
	Total int                    `json:"total"`
}

// RoomOptionResponse is one entry of the reassignment picker, flagging the
// room the booking currently sits on.
type RoomOptionResponse struct {
	roomDto.RoomResponse
	IsCurrent bool `json:"is_current"`
}

type GetRoomOptionsResponse struct {
	Rooms []RoomOptionResponse `json:"rooms"`
	Total int                  `json:"total"`
}

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusClosed      = "closed"
)

type RoomStatusResponse struct {
	RoomID         string           `json:"room_id"`
	RoomNumber     string           `json:"room_number"`
	RoomType       string           `json:"room_type"`
	Status         string           `json:"status"`
	CurrentBooking *BookingResponse `json:"current_booking,omitempty"`
}

type StatusBoardResponse struct {
	Date  string               `json:"date"`
	Rooms []RoomStatusResponse `json:"rooms"`
}

type RoomHistoryResponse struct {
	RoomID       string                               `json:"room_id"`
	Bookings     []BookingResponse                    `json:"bookings"`
	Maintenances []maintenanceDto.MaintenanceResponse `json:"maintenances"`
}

type DashboardStatsResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	ConfirmedRevenue  float64 `json:"confirmed_revenue"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
