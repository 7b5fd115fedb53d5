package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"innkeep/internal/domains/maintenance/model"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateMaintenanceRequest struct {
	RoomID    string `json:"room_id"    validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     validate:"required"`
}

func (c *CreateMaintenanceRequest) ToModel(user string) (model.Maintenance, error) {
	startDate, err := timezone.Parse(constant.DateFormat, c.StartDate)
	if err != nil {
		return model.Maintenance{}, err
	}

	return model.Maintenance{
		ID:        uuid.NewString(),
		RoomID:    c.RoomID,
		StartDate: startDate,
		Reason:    c.Reason,
		Status:    model.StatusOngoing,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type CompleteMaintenanceRequest struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateMaintenanceRequest struct {
	Reason string `db:"reason" json:"reason" validate:"omitempty"`
}

type MaintenanceResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *MaintenanceResponse) FromModel(model model.Maintenance) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.StartDate = model.StartDate.Format(constant.DateFormat)
	r.Reason = model.Reason
	r.Status = model.Status

	if model.EndDate.Valid {
		r.EndDate = model.EndDate.Time.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetMaintenancesResponse struct {
	Maintenances []MaintenanceResponse `json:"maintenances"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetMaintenancesResponse) FromModels(models []model.Maintenance, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Maintenances = make([]MaintenanceResponse, len(models))
	for i, mod := range models {
		r.Maintenances[i].FromModel(mod)
	}
}

// NullEndDate wraps a parsed end date for persistence.
func NullEndDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}
