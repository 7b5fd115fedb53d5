package dto

import (
	"github.com/google/uuid"

	"innkeep/internal/domains/pricing/model"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type QuoteRequest struct {
	CheckIn   string  `json:"check_in"   validate:"required,datetime=2006-01-02"`
	CheckOut  string  `json:"check_out"  validate:"required,datetime=2006-01-02"`
	RoomPrice float64 `json:"room_price" validate:"required,gt=0"`
	RoomType  string  `json:"room_type"  validate:"required"`
}

// NightCharge is one breakdown entry, one per night of the stay.
type NightCharge struct {
	Date       string  `json:"date"`
	BaseRate   float64 `json:"base_rate"`
	Multiplier float64 `json:"multiplier"`
	Total      float64 `json:"total"`
	Notes      string  `json:"notes"`
}

type QuoteResponse struct {
	Nights     int           `json:"nights"`
	TotalPrice float64       `json:"total_price"`
	Breakdown  []NightCharge `json:"breakdown"`
}

type CreateHolidayRequest struct {
	Name           string  `json:"name"            validate:"required,max=100"`
	Date           string  `json:"date"            validate:"required,datetime=2006-01-02"`
	RateMultiplier float64 `json:"rate_multiplier" validate:"required,gt=0"`
	IsBlackout     bool    `json:"is_blackout"`
}

func (c *CreateHolidayRequest) ToModel(user string) (model.Holiday, error) {
	date, err := timezone.Parse(constant.DateFormat, c.Date)
	if err != nil {
		return model.Holiday{}, err
	}

	return model.Holiday{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Date:           date,
		RateMultiplier: c.RateMultiplier,
		IsBlackout:     c.IsBlackout,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateHolidayRequest struct {
	Name           string  `db:"name"            json:"name"            validate:"omitempty,max=100"`
	RateMultiplier float64 `db:"rate_multiplier" json:"rate_multiplier" validate:"omitempty,gt=0"`
	IsBlackout     *bool   `db:"is_blackout"     json:"is_blackout"     validate:"omitempty"`
}

type HolidayResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Date           string  `json:"date"`
	RateMultiplier float64 `json:"rate_multiplier"`
	IsBlackout     bool    `json:"is_blackout"`
	gDto.Metadata
}

func (r *HolidayResponse) FromModel(model model.Holiday) {
	r.ID = model.ID
	r.Name = model.Name
	r.Date = model.Date.Format(constant.DateFormat)
	r.RateMultiplier = model.RateMultiplier
	r.IsBlackout = model.IsBlackout
	r.Metadata.FromModel(model.Metadata)
}

type GetHolidaysResponse struct {
	Holidays  []HolidayResponse `json:"holidays"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetHolidaysResponse) FromModels(models []model.Holiday, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Holidays = make([]HolidayResponse, len(models))
	for i, mod := range models {
		r.Holidays[i].FromModel(mod)
	}
}

type CreateRateRuleRequest struct {
	Name           string  `json:"name"            validate:"required,max=100"`
	StartDate      string  `json:"start_date"      validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date"        validate:"required,datetime=2006-01-02"`
	RateMultiplier float64 `json:"rate_multiplier" validate:"required,gt=0"`
	RoomCategory   string  `json:"room_category"   validate:"omitempty,max=100"`
	Active         *bool   `json:"active"          validate:"omitempty"`
}

func (c *CreateRateRuleRequest) ToModel(user string) (model.RateRule, error) {
	startDate, err := timezone.Parse(constant.DateFormat, c.StartDate)
	if err != nil {
		return model.RateRule{}, err
	}

	endDate, err := timezone.Parse(constant.DateFormat, c.EndDate)
	if err != nil {
		return model.RateRule{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.RateRule{
		ID:             uuid.NewString(),
		Name:           c.Name,
		StartDate:      startDate,
		EndDate:        endDate,
		RateMultiplier: c.RateMultiplier,
		RoomCategory:   c.RoomCategory,
		Active:         active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateRateRuleRequest struct {
	Name           string  `db:"name"            json:"name"            validate:"omitempty,max=100"`
	StartDate      string  `json:"start_date"      validate:"omitempty,datetime=2006-01-02"`
	EndDate        string  `json:"end_date"        validate:"omitempty,datetime=2006-01-02"`
	RateMultiplier float64 `db:"rate_multiplier" json:"rate_multiplier" validate:"omitempty,gt=0"`
	RoomCategory   string  `db:"room_category"   json:"room_category"   validate:"omitempty,max=100"`
	Active         *bool   `db:"active"          json:"active"          validate:"omitempty"`
}

type RateRuleResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	RateMultiplier float64 `json:"rate_multiplier"`
	RoomCategory   string  `json:"room_category"`
	Active         bool    `json:"active"`
	gDto.Metadata
}

func (r *RateRuleResponse) FromModel(model model.RateRule) {
	r.ID = model.ID
	r.Name = model.Name
	r.StartDate = model.StartDate.Format(constant.DateFormat)
	r.EndDate = model.EndDate.Format(constant.DateFormat)
	r.RateMultiplier = model.RateMultiplier
	r.RoomCategory = model.RoomCategory
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRateRulesResponse struct {
	RateRules []RateRuleResponse `json:"rate_rules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRateRulesResponse) FromModels(models []model.RateRule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RateRules = make([]RateRuleResponse, len(models))
	for i, mod := range models {
		r.RateRules[i].FromModel(mod)
	}
}

type RateAuditLogResponse struct {
	ID     string `json:"id"`
	RuleID string `json:"rule_id"`
	Action string `json:"action"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
	Actor  string `json:"actor"`
	gDto.Metadata
}

func (r *RateAuditLogResponse) FromModel(model model.RateAuditLog) {
	r.ID = model.ID
	r.RuleID = model.RuleID
	r.Action = model.Action
	r.Actor = model.Actor

	if model.Before.Valid {
		r.Before = model.Before.String
	}

	if model.After.Valid {
		r.After = model.After.String
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRateAuditLogsResponse struct {
	AuditLogs []RateAuditLogResponse `json:"audit_logs"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetRateAuditLogsResponse) FromModels(models []model.RateAuditLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.AuditLogs = make([]RateAuditLogResponse, len(models))
	for i, mod := range models {
		r.AuditLogs[i].FromModel(mod)
	}
}
