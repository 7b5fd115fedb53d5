package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/mailer"
	"innkeep/infras/otel"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/repository"
	maintenanceRepository "innkeep/internal/domains/maintenance/repository"
	pricingService "innkeep/internal/domains/pricing/service"
	roomModel "innkeep/internal/domains/room/model"
	roomRepository "innkeep/internal/domains/room/repository"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error

	CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (dto.AvailabilityResponse, error)
	GetAvailableRooms(ctx context.Context, checkIn, checkOut string, minCapacity int) (dto.GetAvailableRoomsResponse, error)
	GetReassignmentOptions(ctx context.Context, bookingID string) (dto.GetRoomOptionsResponse, error)
	GetStatusBoard(ctx context.Context) (dto.StatusBoardResponse, error)
	GetRoomHistory(ctx context.Context, roomID, from, to string) (dto.RoomHistoryResponse, error)
	GetDashboardStats(ctx context.Context) (dto.DashboardStatsResponse, error)
	GetUnreadCount(ctx context.Context) (dto.UnreadCountResponse, error)
}

type serviceImpl struct {
	bookingRepo     repository.Booking
	roomRepo        roomRepository.Room
	maintenanceRepo maintenanceRepository.Maintenance
	pricing         pricingService.Pricing
	mailer          mailer.Mailer
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(bookingRepo repository.Booking, roomRepo roomRepository.Room, maintenanceRepo maintenanceRepository.Maintenance, pricing pricingService.Pricing, mailer mailer.Mailer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		bookingRepo:     bookingRepo,
		roomRepo:        roomRepo,
		maintenanceRepo: maintenanceRepo,
		pricing:         pricing,
		mailer:          mailer,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Create books a stay. The caller either names a room or names a room type
// and lets the allocator pick one. The insert runs in a transaction holding
// the room row lock, with both overlap checks repeated inside it, so two
// concurrent requests for the same room and dates cannot both succeed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	var room roomModel.Room

	if req.RoomID != "" {
		room, err = s.resolveExplicitRoom(ctx, req.RoomID, checkIn, checkOut)
	} else {
		room, err = s.allocateRoom(ctx, req.RoomType, checkIn, checkOut)
	}

	if err != nil {
		return res, err
	}

	quote, err := s.pricing.QuoteStay(ctx, room.PricePerNight, room.RoomType, checkIn, checkOut)
	if err != nil {
		return res, fmt.Errorf("failed to price booking: %w", err)
	}

	totalPrice := quote.TotalPrice
	if totalPrice == 0 {
		totalPrice = req.TotalPrice
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	booking := req.ToModel(room.ID, checkIn, checkOut, totalPrice, user)

	if err = s.insertLocked(ctx, booking); err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, "")
	s.notifyBooking(ctx, booking, "Booking received",
		fmt.Sprintf("Hi %s, we received your booking for room %s from %s to %s. Total: %.2f. We will confirm it shortly.",
			booking.CustomerName, room.RoomNumber, req.CheckIn, req.CheckOut, booking.TotalPrice))

	res.FromModel(booking)

	return res, nil
}

// resolveExplicitRoom validates a caller-chosen room against its maintenance
// state and both overlap checks.
func (s *serviceImpl) resolveExplicitRoom(ctx context.Context, roomID string, checkIn, checkOut time.Time) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Bookable() {
		return room, failure.Unprocessable(fmt.Sprintf("room %s is not operational", room.RoomNumber)) // nolint:wrapcheck
	}

	blocked, err := s.maintenanceRepo.HasOverlap(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check maintenance overlap")

		return room, fmt.Errorf("failed to check maintenance overlap: %w", err)
	}

	if blocked {
		return room, failure.Unprocessable(fmt.Sprintf("room %s is scheduled for maintenance during the requested dates", room.RoomNumber)) // nolint:wrapcheck
	}

	taken, err := s.bookingRepo.HasOverlap(ctx, room.ID, checkIn, checkOut, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return room, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if taken {
		return room, failure.Conflict(fmt.Sprintf("room %s is already booked for the requested dates", room.RoomNumber)) // nolint:wrapcheck
	}

	return room, nil
}

// insertLocked re-runs both overlap checks while holding the room row lock,
// then inserts. The pre-checks outside the transaction only exist to give
// callers precise failure codes without paying for a lock.
func (s *serviceImpl) insertLocked(ctx context.Context, booking model.Booking) (err error) {
	sqltx, err := s.roomRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback booking transaction")
		}
	}()

	room, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock room")

		return fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Bookable() {
		return failure.Unprocessable(fmt.Sprintf("room %s is not operational", room.RoomNumber)) // nolint:wrapcheck
	}

	blocked, err := s.maintenanceRepo.HasOverlapTx(ctx, sqltx, room.ID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check maintenance overlap")

		return fmt.Errorf("failed to check maintenance overlap: %w", err)
	}

	if blocked {
		return failure.Unprocessable(fmt.Sprintf("room %s is scheduled for maintenance during the requested dates", room.RoomNumber)) // nolint:wrapcheck
	}

	taken, err := s.bookingRepo.HasOverlapTx(ctx, sqltx, room.ID, booking.CheckIn, booking.CheckOut, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("room %s is already booked for the requested dates", room.RoomNumber)) // nolint:wrapcheck
	}

	if err = s.bookingRepo.InsertTx(ctx, sqltx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.bookingRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update handles customer edits, room reassignment, status transitions, the
// read flag, and the receipt link. The price set at creation time is never
// recomputed here.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	confirmed := false

	if req.Status != "" && req.Status != booking.Status {
		if !booking.CanTransitionTo(req.Status) {
			return failure.BadRequestFromString("cancelled bookings cannot change status") // nolint:wrapcheck
		}

		updatedFields[model.FieldStatus] = req.Status
		confirmed = req.Status == model.StatusConfirmed
	}

	if req.RoomID != "" && req.RoomID != booking.RoomID {
		if err = s.reassignRoom(ctx, booking, req.RoomID); err != nil {
			return err
		}

		updatedFields[model.FieldRoomID] = req.RoomID
	}

	if err = s.bookingRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateCaches(ctx, id)

	if confirmed {
		s.notifyBooking(ctx, booking, "Booking confirmed",
			fmt.Sprintf("Hi %s, your booking from %s to %s is confirmed. We look forward to your stay.",
				booking.CustomerName, booking.CheckIn.Format(constant.DateFormat), booking.CheckOut.Format(constant.DateFormat)))
	}

	return nil
}

// reassignRoom validates moving the booking onto another room of the same
// type, keeping the original dates and price.
func (s *serviceImpl) reassignRoom(ctx context.Context, booking model.Booking, newRoomID string) error {
	current, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get current room")

		return fmt.Errorf("failed to get current room: %w", err)
	}

	next, err := s.roomRepo.Get(ctx, shared.FilterByID(newRoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if next.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if current.ID != constant.Empty && next.RoomType != current.RoomType {
		return failure.BadRequestFromString(fmt.Sprintf("room %s is a %s, bookings can only move between rooms of the same type", next.RoomNumber, next.RoomType)) // nolint:wrapcheck
	}

	if !next.Bookable() {
		return failure.Unprocessable(fmt.Sprintf("room %s is not operational", next.RoomNumber)) // nolint:wrapcheck
	}

	blocked, err := s.maintenanceRepo.HasOverlap(ctx, next.ID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check maintenance overlap")

		return fmt.Errorf("failed to check maintenance overlap: %w", err)
	}

	if blocked {
		return failure.Unprocessable(fmt.Sprintf("room %s is scheduled for maintenance during the booking dates", next.RoomNumber)) // nolint:wrapcheck
	}

	taken, err := s.bookingRepo.HasOverlap(ctx, next.ID, booking.CheckIn, booking.CheckOut, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("room %s is already booked for the booking dates", next.RoomNumber)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) notifyBooking(ctx context.Context, booking model.Booking, subject, message string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.mailer.Send(c, booking.CustomerName, booking.CustomerEmail, subject, message, message); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to send booking notification")
		}
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := timezone.Parse(constant.DateFormat, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid check_in date: %v", err)) // nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(constant.DateFormat, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid check_out date: %v", err)) // nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}
