package model

import "innkeep/shared/model"

const (
	TableName  = "agents"
	EntityName = "agent"

	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldStatus = "status"

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusSuspended = "suspended"
)

// Agent is an external booking partner. Only approved agents should be
// attached to new bookings.
type Agent struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Company string `db:"company"`
	Status  string `db:"status"`
	model.Metadata
}
