package model

import (
	"database/sql"
	"time"

	"innkeep/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldAgentID        = "agent_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldTotalPrice     = "total_price"
	FieldStatus         = "status"
	FieldReceiptURL     = "receipt_url"
	FieldReadByEmployee = "read_by_employee"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID             string         `db:"id"`
	RoomID         string         `db:"room_id"`
	AgentID        sql.NullString `db:"agent_id"`
	CustomerName   string         `db:"customer_name"`
	CustomerEmail  string         `db:"customer_email"`
	CustomerPhone  string         `db:"customer_phone"`
	CheckIn        time.Time      `db:"check_in"`
	CheckOut       time.Time      `db:"check_out"`
	TotalPrice     float64        `db:"total_price"`
	Status         string         `db:"status"`
	ReceiptURL     sql.NullString `db:"receipt_url"`
	ReadByEmployee bool           `db:"read_by_employee"`
	model.Metadata
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// CanTransitionTo reports whether the booking may move to the given status.
// Cancelled is terminal.
func (b *Booking) CanTransitionTo(status string) bool {
	if !ValidStatus(status) {
		return false
	}

	return b.Status != StatusCancelled
}

// Occupies reports whether the booking blocks its room for the night that
// starts at the given date. Check-out day itself is free.
func (b *Booking) Occupies(night time.Time) bool {
	if b.Status == StatusCancelled {
		return false
	}

	return !night.Before(b.CheckIn) && night.Before(b.CheckOut)
}
