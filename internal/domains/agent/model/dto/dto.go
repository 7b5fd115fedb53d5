package dto

import (
	"github.com/google/uuid"

	"innkeep/internal/domains/agent/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateAgentRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"omitempty,max=30"`
	Company string `json:"company" validate:"omitempty,max=100"`
}

func (c *CreateAgentRequest) ToModel(user string) model.Agent {
	return model.Agent{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Status:  model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAgentRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=30"`
	Company string `db:"company" json:"company" validate:"omitempty,max=100"`
	Status  string `db:"status"  json:"status"  validate:"omitempty,oneof=pending approved suspended"`
}

type AgentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Status  string `json:"status"`
	gDto.Metadata
}

func (r *AgentResponse) FromModel(model model.Agent) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Company = model.Company
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetAgentsResponse struct {
	Agents    []AgentResponse `json:"agents"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAgentsResponse) FromModels(models []model.Agent, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Agents = make([]AgentResponse, len(models))
	for i, mod := range models {
		r.Agents[i].FromModel(mod)
	}
}
