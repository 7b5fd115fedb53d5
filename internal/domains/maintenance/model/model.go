package model

import (
	"database/sql"
	"time"

	"innkeep/shared/model"
)

const (
	TableName  = "room_maintenance"
	EntityName = "maintenance"

	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"

	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

type Maintenance struct {
	ID        string       `db:"id"`
	RoomID    string       `db:"room_id"`
	StartDate time.Time    `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
	Reason    string       `db:"reason"`
	Status    string       `db:"status"`
	model.Metadata
}
