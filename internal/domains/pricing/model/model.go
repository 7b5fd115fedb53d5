package model

import (
	"database/sql"
	"time"

	"innkeep/shared/model"
)

const (
	HolidayTableName  = "holidays"
	HolidayEntityName = "holiday"

	RuleTableName  = "rate_rules"
	RuleEntityName = "rate_rule"

	AuditTableName  = "rate_audit_logs"
	AuditEntityName = "rate_audit_log"

	FieldID           = "id"
	FieldName         = "name"
	FieldDate         = "date"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldActive       = "active"
	FieldRoomCategory = "room_category"
	FieldRuleID       = "rule_id"

	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

type Holiday struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Date           time.Time `db:"date"`
	RateMultiplier float64   `db:"rate_multiplier"`
	IsBlackout     bool      `db:"is_blackout"`
	model.Metadata
}

type RateRule struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	RateMultiplier float64   `db:"rate_multiplier"`
	RoomCategory   string    `db:"room_category"`
	Active         bool      `db:"active"`
	model.Metadata
}

// AppliesTo reports whether the rule is in effect for the given night and
// room category. A blank room_category scopes the rule to every category.
func (r *RateRule) AppliesTo(night time.Time, category string) bool {
	if !r.Active {
		return false
	}

	if night.Before(r.StartDate) || night.After(r.EndDate) {
		return false
	}

	return r.RoomCategory == "" || r.RoomCategory == category
}

// RateAuditLog records a rate rule mutation. Rows are append-only.
type RateAuditLog struct {
	ID     string         `db:"id"`
	RuleID string         `db:"rule_id"`
	Action string         `db:"action"`
	Before sql.NullString `db:"before_snapshot"`
	After  sql.NullString `db:"after_snapshot"`
	Actor  string         `db:"actor"`
	model.Metadata
}
