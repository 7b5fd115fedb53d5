package agent

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/agent/model"
	"innkeep/internal/domains/agent/model/dto"
	"innkeep/internal/domains/agent/service"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Agent
	otel    otel.Otel
}

func New(service service.Agent, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/agents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAgent)
		routerGroup.Get("/", handler.GetAgents)
		routerGroup.Get("/{id}", handler.GetAgentByID)
		routerGroup.Patch("/{id}", handler.UpdateAgent)
		routerGroup.Delete("/{id}", handler.DeleteAgent)
	})
}

// CreateAgent handles the registration of a new booking partner.
// @Summary Create a new agent
// @Description Register a new booking partner with the provided details.
// @Tags Agent
// @Accept json
// @Produce json
// @Param request body dto.CreateAgentRequest true "Create Agent Request"
// @Success 201 {object} response.Message "Agent created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/agents [post]
// @Security BearerAuth
func (handler *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAgent")
	defer scope.End()

	req := dto.CreateAgentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create agent")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Agent created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Agent created successfully")
}

// GetAgents retrieves all agents based on query parameters.
// @Summary Get all agents
// @Description Retrieve all booking partners with optional filtering and pagination.
// @Tags Agent
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, suspended)"
// @Success 200 {object} response.Data[dto.AgentResponse] "List of agents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/agents [get]
func (handler *Handler) GetAgents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAgents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	agents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get agents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Agents retrieved successfully")

	response.WithJSON(w, http.StatusOK, agents)
}

// GetAgentByID retrieves an agent by its ID.
// @Summary Get an agent by ID
// @Description Retrieve a booking partner by its unique identifier.
// @Tags Agent
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Data[dto.AgentResponse] "Agent details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/agents/{id} [get]
func (handler *Handler) GetAgentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAgentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	agent, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get agent by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Agent retrieved successfully")

	response.WithJSON(w, http.StatusOK, agent)
}

// UpdateAgent updates an existing agent by its ID.
// @Summary Update an agent by ID
// @Description Update the details or approval status of an existing agent.
// @Tags Agent
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param request body dto.UpdateAgentRequest true "Update Agent Request"
// @Success 200 {object} response.Message "Agent updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/agents/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAgent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAgentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update agent")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Agent updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Agent updated successfully")
}

// DeleteAgent deletes an agent by its ID.
// @Summary Delete an agent by ID
// @Description Delete a booking partner using its unique identifier.
// @Tags Agent
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Message "Agent deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/agents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAgent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete agent")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Agent deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Agent deleted successfully")
}
