package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/internal/domains/pricing/model"
	"innkeep/internal/domains/pricing/model/dto"
	"innkeep/internal/domains/pricing/repository"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

const (
	cacheGetHoliday    = "holiday:get"
	cacheGetAllHoliday = "holiday:gets"
	cacheCountHoliday  = "holiday:count"
	cacheGetRule       = "rate_rule:get"
	cacheGetAllRule    = "rate_rule:gets"
	cacheCountRule     = "rate_rule:count"
)

type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	QuoteStay(ctx context.Context, baseRate float64, category string, checkIn, checkOut time.Time) (dto.QuoteResponse, error)

	CreateHoliday(ctx context.Context, req dto.CreateHolidayRequest) error
	GetHolidays(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHolidaysResponse, error)
	GetHoliday(ctx context.Context, id string) (dto.HolidayResponse, error)
	UpdateHoliday(ctx context.Context, req dto.UpdateHolidayRequest, id string) error
	DeleteHoliday(ctx context.Context, id string) error

	CreateRateRule(ctx context.Context, req dto.CreateRateRuleRequest) error
	GetRateRules(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRateRulesResponse, error)
	GetRateRule(ctx context.Context, id string) (dto.RateRuleResponse, error)
	UpdateRateRule(ctx context.Context, req dto.UpdateRateRuleRequest, id string) error
	DeleteRateRule(ctx context.Context, id string) error

	GetAuditLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRateAuditLogsResponse, error)
}

type serviceImpl struct {
	holidayRepo repository.Holiday
	ruleRepo    repository.RateRule
	auditRepo   repository.RateAudit
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(holidayRepo repository.Holiday, ruleRepo repository.RateRule, auditRepo repository.RateAudit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Pricing {
	return &serviceImpl{
		holidayRepo: holidayRepo,
		ruleRepo:    ruleRepo,
		auditRepo:   auditRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Quote prices a stay from the request's dates, base rate, and room type.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, err := timezone.Parse(constant.DateFormat, req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid check_in date: %v", err)) // nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(constant.DateFormat, req.CheckOut)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid check_out date: %v", err)) // nolint:wrapcheck
	}

	return s.QuoteStay(ctx, req.RoomPrice, req.RoomType, checkIn, checkOut)
}

// QuoteStay is the engine entry point for callers that already resolved a
// room. Reads go straight to the store, never the cache, so the quote always
// reflects the current holiday and rate rule state.
func (s *serviceImpl) QuoteStay(ctx context.Context, baseRate float64, category string, checkIn, checkOut time.Time) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuoteStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !checkIn.Before(checkOut) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	holidays, err := s.holidayRepo.GetInRange(ctx, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to get holidays for quote")

		return res, fmt.Errorf("failed to get holidays for quote: %w", err)
	}

	rules, err := s.ruleRepo.GetActiveInRange(ctx, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate rules for quote")

		return res, fmt.Errorf("failed to get rate rules for quote: %w", err)
	}

	return computeQuote(baseRate, category, checkIn, checkOut, holidays, rules)
}

func (s *serviceImpl) CreateHoliday(ctx context.Context, req dto.CreateHolidayRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	holiday, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	dateTaken, err := s.holidayRepo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    holiday.Date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.HolidayTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check holiday date")

		return fmt.Errorf("failed to check holiday date: %w", err)
	}

	if dateTaken {
		return failure.Conflict(fmt.Sprintf("a holiday already exists on %s", req.Date)) // nolint:wrapcheck
	}

	if err = s.holidayRepo.Insert(ctx, holiday); err != nil {
		log.Error().Err(err).Msg("failed to create holiday")

		return fmt.Errorf("failed to create holiday: %w", err)
	}

	s.invalidateHolidayCaches(ctx, "")

	return nil
}

func (s *serviceImpl) GetHolidays(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHolidaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHolidays")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHoliday, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for holidays")

		return res, nil
	}

	total, err := s.holidayRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count holidays")

		return res, fmt.Errorf("failed to count holidays: %w", err)
	}

	models, err := s.holidayRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get holidays")

		return res, fmt.Errorf("failed to get holidays: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save holidays to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetHoliday(ctx context.Context, id string) (res dto.HolidayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	holiday, err := s.holidayRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.HolidayTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get holiday")

		return res, fmt.Errorf("failed to get holiday: %w", err)
	}

	if holiday.ID == constant.Empty {
		return res, failure.NotFound("holiday not found") // nolint:wrapcheck
	}

	res.FromModel(holiday)

	return res, nil
}

func (s *serviceImpl) UpdateHoliday(ctx context.Context, req dto.UpdateHolidayRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateHolidayRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.HolidayTableName)

	exist, err := s.holidayRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if holiday exists")

		return fmt.Errorf("failed to check if holiday exists: %w", err)
	}

	if !exist {
		return failure.NotFound("holiday not found") // nolint:wrapcheck
	}

	if err := s.holidayRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update holiday")

		return fmt.Errorf("failed to update holiday: %w", err)
	}

	s.invalidateHolidayCaches(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteHoliday(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteHoliday")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.HolidayTableName)

	exist, err := s.holidayRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if holiday exists")

		return fmt.Errorf("failed to check if holiday exists: %w", err)
	}

	if !exist {
		return failure.NotFound("holiday not found") // nolint:wrapcheck
	}

	if err := s.holidayRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete holiday")

		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	s.invalidateHolidayCaches(ctx, id)

	return nil
}

func (s *serviceImpl) CreateRateRule(ctx context.Context, req dto.CreateRateRuleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRateRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rule, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if rule.EndDate.Before(rule.StartDate) {
		return failure.BadRequestFromString("end_date must be on or after start_date") // nolint:wrapcheck
	}

	sqltx, err := s.ruleRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rate rule transaction: %w", err)
	}

	defer s.rollbackOnError(sqltx, &err)

	if err = s.ruleRepo.InsertTx(ctx, sqltx, rule); err != nil {
		log.Error().Err(err).Msg("failed to create rate rule")

		return fmt.Errorf("failed to create rate rule: %w", err)
	}

	// The audit trail must move with the rule. A failed append rolls the
	// whole mutation back.
	if err = s.appendAudit(ctx, sqltx, rule.ID, model.AuditActionCreate, nil, &rule, user); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit rate rule transaction")

		return fmt.Errorf("failed to commit rate rule transaction: %w", err)
	}

	s.invalidateRuleCaches(ctx, "")

	return nil
}

func (s *serviceImpl) GetRateRules(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRateRulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRateRules")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rate rules")

		return res, nil
	}

	total, err := s.ruleRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rate rules")

		return res, fmt.Errorf("failed to count rate rules: %w", err)
	}

	models, err := s.ruleRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate rules")

		return res, fmt.Errorf("failed to get rate rules: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rate rules to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetRateRule(ctx context.Context, id string) (res dto.RateRuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRateRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	rule, err := s.ruleRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.RuleTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate rule")

		return res, fmt.Errorf("failed to get rate rule: %w", err)
	}

	if rule.ID == constant.Empty {
		return res, failure.NotFound("rate rule not found") // nolint:wrapcheck
	}

	res.FromModel(rule)

	return res, nil
}

func (s *serviceImpl) UpdateRateRule(ctx context.Context, req dto.UpdateRateRuleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRateRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRateRuleRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.RuleTableName)

	sqltx, err := s.ruleRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rate rule transaction: %w", err)
	}

	defer s.rollbackOnError(sqltx, &err)

	before, err := s.ruleRepo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate rule")

		return fmt.Errorf("failed to get rate rule: %w", err)
	}

	if before.ID == constant.Empty {
		return failure.NotFound("rate rule not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	startDate := before.StartDate
	endDate := before.EndDate

	if req.StartDate != "" {
		if startDate, err = timezone.Parse(constant.DateFormat, req.StartDate); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid start_date: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldStartDate] = startDate
	}

	if req.EndDate != "" {
		if endDate, err = timezone.Parse(constant.DateFormat, req.EndDate); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_date: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	if endDate.Before(startDate) {
		return failure.BadRequestFromString("end_date must be on or after start_date") // nolint:wrapcheck
	}

	if err = s.ruleRepo.UpdateTx(ctx, sqltx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update rate rule")

		return fmt.Errorf("failed to update rate rule: %w", err)
	}

	after, err := s.ruleRepo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reread rate rule")

		return fmt.Errorf("failed to reread rate rule: %w", err)
	}

	if err = s.appendAudit(ctx, sqltx, id, model.AuditActionUpdate, &before, &after, user); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit rate rule transaction")

		return fmt.Errorf("failed to commit rate rule transaction: %w", err)
	}

	s.invalidateRuleCaches(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteRateRule(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRateRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.RuleTableName)

	sqltx, err := s.ruleRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rate rule transaction: %w", err)
	}

	defer s.rollbackOnError(sqltx, &err)

	before, err := s.ruleRepo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate rule")

		return fmt.Errorf("failed to get rate rule: %w", err)
	}

	if before.ID == constant.Empty {
		return failure.NotFound("rate rule not found") // nolint:wrapcheck
	}

	if err = s.ruleRepo.DeleteTx(ctx, sqltx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete rate rule")

		return fmt.Errorf("failed to delete rate rule: %w", err)
	}

	if err = s.appendAudit(ctx, sqltx, id, model.AuditActionDelete, &before, nil, user); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit rate rule transaction")

		return fmt.Errorf("failed to commit rate rule transaction: %w", err)
	}

	s.invalidateRuleCaches(ctx, id)

	return nil
}

func (s *serviceImpl) GetAuditLogs(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRateAuditLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAuditLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.auditRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rate audit logs")

		return res, fmt.Errorf("failed to count rate audit logs: %w", err)
	}

	models, err := s.auditRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rate audit logs")

		return res, fmt.Errorf("failed to get rate audit logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) appendAudit(ctx context.Context, sqltx *sqlx.Tx, ruleID, action string, before, after *model.RateRule, user string) error {
	audit := model.RateAuditLog{
		ID:     uuid.NewString(),
		RuleID: ruleID,
		Action: action,
		Actor:  user,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	var err error

	if audit.Before, err = snapshotRule(before); err != nil {
		log.Error().Err(err).Msg("failed to snapshot rate rule")

		return fmt.Errorf("failed to snapshot rate rule: %w", err)
	}

	if audit.After, err = snapshotRule(after); err != nil {
		log.Error().Err(err).Msg("failed to snapshot rate rule")

		return fmt.Errorf("failed to snapshot rate rule: %w", err)
	}

	if err = s.auditRepo.InsertTx(ctx, sqltx, audit); err != nil {
		log.Error().Err(err).Msg("failed to append rate audit log")

		return fmt.Errorf("failed to append rate audit log: %w", err)
	}

	return nil
}

func snapshotRule(rule *model.RateRule) (sql.NullString, error) {
	if rule == nil {
		return sql.NullString{}, nil
	}

	res := dto.RateRuleResponse{}
	res.FromModel(*rule)

	raw, err := json.Marshal(res)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal rate rule snapshot: %w", err)
	}

	return sql.NullString{String: string(raw), Valid: true}, nil
}

func (s *serviceImpl) rollbackOnError(sqltx *sqlx.Tx, err *error) {
	if *err == nil {
		return
	}

	if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		log.Error().Err(rbErr).Msg("failed to rollback rate rule transaction")
	}
}

func (s *serviceImpl) invalidateHolidayCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHoliday, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete holiday from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHoliday)
		shared.InvalidateCaches(c, s.cache, cacheCountHoliday)
	}()
}

func (s *serviceImpl) invalidateRuleCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRule, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete rate rule from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRule)
		shared.InvalidateCaches(c, s.cache, cacheCountRule)
	}()
}
