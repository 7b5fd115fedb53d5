package maintenance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/maintenance/model"
	"innkeep/internal/domains/maintenance/model/dto"
	"innkeep/internal/domains/maintenance/service"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Maintenance
	otel    otel.Otel
}

func New(service service.Maintenance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/maintenance", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMaintenance)
		routerGroup.Get("/", handler.GetMaintenances)
		routerGroup.Get("/{id}", handler.GetMaintenanceByID)
		routerGroup.Patch("/{id}", handler.UpdateMaintenance)
		routerGroup.Post("/{id}/complete", handler.CompleteMaintenance)
	})
}

// CreateMaintenance opens a maintenance window for a room.
// @Summary Create a maintenance window
// @Description Open a maintenance window and take the room out of service.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Create Maintenance Request"
// @Success 201 {object} response.Message "Maintenance window created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [post]
// @Security BearerAuth
func (handler *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMaintenance")
	defer scope.End()

	req := dto.CreateMaintenanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create maintenance window")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Maintenance window created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Maintenance window created successfully")
}

// GetMaintenances retrieves all maintenance windows based on query parameters.
// @Summary Get all maintenance windows
// @Description Retrieve all maintenance windows with optional filtering and pagination.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Param status query string false "Filter by status (ongoing, completed)"
// @Success 200 {object} response.Data[dto.MaintenanceResponse] "List of maintenance windows"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [get]
func (handler *Handler) GetMaintenances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenances")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomID := r.URL.Query().Get(model.FieldRoomID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	maintenances, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance windows")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance windows retrieved successfully")

	response.WithJSON(w, http.StatusOK, maintenances)
}

// GetMaintenanceByID retrieves a maintenance window by its ID.
// @Summary Get a maintenance window by ID
// @Description Retrieve a maintenance window by its unique identifier.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} response.Data[dto.MaintenanceResponse] "Maintenance details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [get]
func (handler *Handler) GetMaintenanceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenanceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	maintenance, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance window by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance window retrieved successfully")

	response.WithJSON(w, http.StatusOK, maintenance)
}

// UpdateMaintenance updates an existing maintenance window by its ID.
// @Summary Update a maintenance window by ID
// @Description Update the details of an existing maintenance window.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param request body dto.UpdateMaintenanceRequest true "Update Maintenance Request"
// @Success 200 {object} response.Message "Maintenance window updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMaintenance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateMaintenanceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update maintenance window")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Maintenance window updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Maintenance window updated successfully")
}

// CompleteMaintenance closes a maintenance window and returns the room to service.
// @Summary Complete a maintenance window
// @Description Close a maintenance window and return the room to operational status.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param request body dto.CompleteMaintenanceRequest true "Complete Maintenance Request"
// @Success 200 {object} response.Message "Maintenance window completed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteMaintenance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CompleteMaintenanceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Complete(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete maintenance window")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Maintenance window completed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Maintenance window completed successfully")
}
