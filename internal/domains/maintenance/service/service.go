package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/internal/domains/maintenance/model"
	"innkeep/internal/domains/maintenance/model/dto"
	"innkeep/internal/domains/maintenance/repository"
	roomModel "innkeep/internal/domains/room/model"
	roomRepo "innkeep/internal/domains/room/repository"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

const (
	cacheGetMaintenance    = "maintenance:get"
	cacheGetAllMaintenance = "maintenance:gets"
	cacheCountMaintenance  = "maintenance:count"
)

type Maintenance interface {
	Create(ctx context.Context, req dto.CreateMaintenanceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMaintenancesResponse, error)
	Get(ctx context.Context, id string) (dto.MaintenanceResponse, error)
	Update(ctx context.Context, req dto.UpdateMaintenanceRequest, id string) error
	Complete(ctx context.Context, req dto.CompleteMaintenanceRequest, id string) error
}

type serviceImpl struct {
	repo     repository.Maintenance
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Maintenance, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Maintenance {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create opens a maintenance window and takes the room out of service.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMaintenanceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	maintenance, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse maintenance request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, maintenance); err != nil {
		log.Error().Err(err).Msg("failed to create maintenance record")

		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	roomFields := map[string]any{
		roomModel.FieldMaintenanceStatus: roomModel.MaintenanceStatusMaintenance,
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         user,
	}

	if err = s.roomRepo.Update(ctx, roomFields, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to flag room as under maintenance")

		return fmt.Errorf("failed to flag room as under maintenance: %w", err)
	}

	s.invalidateCaches(ctx, "")

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMaintenancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMaintenance, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for maintenance records")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count maintenance records")

		return res, fmt.Errorf("failed to count maintenance records: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance records")

		return res, fmt.Errorf("failed to get maintenance records: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save maintenance records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MaintenanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMaintenance, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for maintenance record")

		return res, nil
	}

	maintenance, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance record")

		return res, fmt.Errorf("failed to get maintenance record: %w", err)
	}

	if maintenance.ID == constant.Empty {
		return res, failure.NotFound("maintenance record not found") // nolint:wrapcheck
	}

	res.FromModel(maintenance)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save maintenance record to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMaintenanceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateMaintenanceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if maintenance record exists")

		return fmt.Errorf("failed to check if maintenance record exists: %w", err)
	}

	if !exist {
		return failure.NotFound("maintenance record not found") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update maintenance record")

		return fmt.Errorf("failed to update maintenance record: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

// Complete closes the maintenance window and is the only path that returns a
// room to operational status.
func (s *serviceImpl) Complete(ctx context.Context, req dto.CompleteMaintenanceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	maintenance, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance record")

		return fmt.Errorf("failed to get maintenance record: %w", err)
	}

	if maintenance.ID == constant.Empty {
		return failure.NotFound("maintenance record not found") // nolint:wrapcheck
	}

	if maintenance.Status == model.StatusCompleted {
		return failure.BadRequestFromString("maintenance record is already completed") // nolint:wrapcheck
	}

	endDate, err := timezone.Parse(constant.DateFormat, req.EndDate)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if endDate.Before(maintenance.StartDate) {
		return failure.BadRequestFromString("end_date must be on or after start_date") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldEndDate:       dto.NullEndDate(endDate),
		model.FieldStatus:        model.StatusCompleted,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to complete maintenance record")

		return fmt.Errorf("failed to complete maintenance record: %w", err)
	}

	// Another ongoing window may still hold the room out of service.
	stillOngoing, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    maintenance.RoomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusOngoing,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check remaining maintenance records")

		return fmt.Errorf("failed to check remaining maintenance records: %w", err)
	}

	if !stillOngoing {
		roomFields := map[string]any{
			roomModel.FieldMaintenanceStatus: roomModel.MaintenanceStatusOperational,
			constant.FieldModifiedAt:         timezone.Now(),
			constant.FieldModifiedBy:         user,
		}

		if err := s.roomRepo.Update(ctx, roomFields, shared.FilterByID(maintenance.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to restore room to operational status")

			return fmt.Errorf("failed to restore room to operational status: %w", err)
		}
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMaintenance, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete maintenance record from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMaintenance)
		shared.InvalidateCaches(c, s.cache, cacheCountMaintenance)
	}()
}
