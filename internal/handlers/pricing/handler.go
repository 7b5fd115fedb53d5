package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/pricing/model"
	"innkeep/internal/domains/pricing/model/dto"
	"innkeep/internal/domains/pricing/service"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Post("/quote", handler.Quote)

		routerGroup.Post("/holidays", handler.CreateHoliday)
		routerGroup.Get("/holidays", handler.GetHolidays)
		routerGroup.Get("/holidays/{id}", handler.GetHolidayByID)
		routerGroup.Patch("/holidays/{id}", handler.UpdateHoliday)
		routerGroup.Delete("/holidays/{id}", handler.DeleteHoliday)

		routerGroup.Post("/rate-rules", handler.CreateRateRule)
		routerGroup.Get("/rate-rules", handler.GetRateRules)
		routerGroup.Get("/rate-rules/{id}", handler.GetRateRuleByID)
		routerGroup.Patch("/rate-rules/{id}", handler.UpdateRateRule)
		routerGroup.Delete("/rate-rules/{id}", handler.DeleteRateRule)

		routerGroup.Get("/audit-logs", handler.GetAuditLogs)
	})
}

// Quote prices a stay night by night.
// @Summary Quote a stay
// @Description Price a stay per night, applying rate rules and holiday multipliers.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Price quote"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/quote [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stay quoted successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateHoliday handles the creation of a new holiday.
// @Summary Create a new holiday
// @Description Create a holiday with its rate multiplier or blackout flag.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.CreateHolidayRequest true "Create Holiday Request"
// @Success 201 {object} response.Message "Holiday created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/holidays [post]
// @Security BearerAuth
func (handler *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHoliday")
	defer scope.End()

	req := dto.CreateHolidayRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateHoliday(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create holiday")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Holiday created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Holiday created successfully")
}

// GetHolidays retrieves all holidays based on query parameters.
// @Summary Get all holidays
// @Description Retrieve all holidays with optional filtering and pagination.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.HolidayResponse] "List of holidays"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/holidays [get]
func (handler *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHolidays")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	holidays, err := handler.service.GetHolidays(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get holidays")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Holidays retrieved successfully")

	response.WithJSON(w, http.StatusOK, holidays)
}

// GetHolidayByID retrieves a holiday by its ID.
// @Summary Get a holiday by ID
// @Description Retrieve a holiday by its unique identifier.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Success 200 {object} response.Data[dto.HolidayResponse] "Holiday details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/holidays/{id} [get]
func (handler *Handler) GetHolidayByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHolidayByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	holiday, err := handler.service.GetHoliday(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get holiday by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Holiday retrieved successfully")

	response.WithJSON(w, http.StatusOK, holiday)
}

// UpdateHoliday updates an existing holiday by its ID.
// @Summary Update a holiday by ID
// @Description Update the details of an existing holiday.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Param request body dto.UpdateHolidayRequest true "Update Holiday Request"
// @Success 200 {object} response.Message "Holiday updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/holidays/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHoliday")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateHolidayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateHoliday(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update holiday")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Holiday updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Holiday updated successfully")
}

// DeleteHoliday deletes a holiday by its ID.
// @Summary Delete a holiday by ID
// @Description Delete a holiday using its unique identifier.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Success 200 {object} response.Message "Holiday deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/holidays/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHoliday")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteHoliday(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete holiday")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Holiday deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Holiday deleted successfully")
}

// CreateRateRule handles the creation of a new rate rule.
// @Summary Create a new rate rule
// @Description Create a seasonal rate rule with its multiplier and date range.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.CreateRateRuleRequest true "Create Rate Rule Request"
// @Success 201 {object} response.Message "Rate rule created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/rate-rules [post]
// @Security BearerAuth
func (handler *Handler) CreateRateRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRateRule")
	defer scope.End()

	req := dto.CreateRateRuleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateRateRule(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rate rule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rate rule created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Rate rule created successfully")
}

// GetRateRules retrieves all rate rules based on query parameters.
// @Summary Get all rate rules
// @Description Retrieve all rate rules with optional filtering and pagination.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_category query string false "Filter by room category"
// @Success 200 {object} response.Data[dto.RateRuleResponse] "List of rate rules"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/rate-rules [get]
func (handler *Handler) GetRateRules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRateRules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomCategory := r.URL.Query().Get(model.FieldRoomCategory)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomCategory != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    roomCategory,
			Table:    model.RuleTableName,
		})
	}

	rules, err := handler.service.GetRateRules(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rate rules")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rate rules retrieved successfully")

	response.WithJSON(w, http.StatusOK, rules)
}

// GetRateRuleByID retrieves a rate rule by its ID.
// @Summary Get a rate rule by ID
// @Description Retrieve a rate rule by its unique identifier.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Rate Rule ID"
// @Success 200 {object} response.Data[dto.RateRuleResponse] "Rate rule details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/rate-rules/{id} [get]
func (handler *Handler) GetRateRuleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRateRuleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rule, err := handler.service.GetRateRule(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rate rule by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rate rule retrieved successfully")

	response.WithJSON(w, http.StatusOK, rule)
}

// UpdateRateRule updates an existing rate rule by its ID.
// @Summary Update a rate rule by ID
// @Description Update the details of an existing rate rule. The change is recorded in the audit log.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Rate Rule ID"
// @Param request body dto.UpdateRateRuleRequest true "Update Rate Rule Request"
// @Success 200 {object} response.Message "Rate rule updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/rate-rules/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRateRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRateRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRateRuleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRateRule(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rate rule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rate rule updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Rate rule updated successfully")
}

// DeleteRateRule deletes a rate rule by its ID.
// @Summary Delete a rate rule by ID
// @Description Delete a rate rule using its unique identifier. The deletion is recorded in the audit log.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Rate Rule ID"
// @Success 200 {object} response.Message "Rate rule deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/rate-rules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRateRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRateRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteRateRule(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete rate rule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rate rule deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Rate rule deleted successfully")
}

// GetAuditLogs retrieves the rate rule audit trail.
// @Summary Get rate audit logs
// @Description Retrieve the audit trail of rate rule changes with optional filtering and pagination.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param rule_id query string false "Filter by rate rule ID"
// @Success 200 {object} response.Data[dto.RateAuditLogResponse] "List of audit logs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/audit-logs [get]
// @Security BearerAuth
func (handler *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAuditLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ruleID := r.URL.Query().Get(model.FieldRuleID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if ruleID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRuleID,
			Operator: gDto.FilterOperatorEq,
			Value:    ruleID,
			Table:    model.AuditTableName,
		})
	}

	logs, err := handler.service.GetAuditLogs(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Audit logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}
