package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	maintenanceModel "innkeep/internal/domains/maintenance/model"
	maintenanceDto "innkeep/internal/domains/maintenance/model/dto"
	roomModel "innkeep/internal/domains/room/model"
	roomDto "innkeep/internal/domains/room/model/dto"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

// allocateRoom picks the first free room of the type, walking the catalog in
// room number order so equal inputs always land on the same room.
func (s *serviceImpl) allocateRoom(ctx context.Context, roomType string, checkIn, checkOut time.Time) (roomModel.Room, error) {
	candidates, err := s.roomsOfType(ctx, roomType)
	if err != nil {
		return roomModel.Room{}, err
	}

	for _, room := range candidates {
		free, err := s.roomFree(ctx, room, checkIn, checkOut, "")
		if err != nil {
			return roomModel.Room{}, err
		}

		if free {
			return room, nil
		}
	}

	return roomModel.Room{}, failure.Unprocessable(fmt.Sprintf("no %s room is available for the requested dates", roomType)) // nolint:wrapcheck
}

// roomFree reports whether the room can host [checkIn, checkOut), skipping
// the excluded booking when revalidating an existing one.
func (s *serviceImpl) roomFree(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	if !room.Bookable() {
		return false, nil
	}

	blocked, err := s.maintenanceRepo.HasOverlap(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check maintenance overlap")

		return false, fmt.Errorf("failed to check maintenance overlap: %w", err)
	}

	if blocked {
		return false, nil
	}

	taken, err := s.bookingRepo.HasOverlap(ctx, room.ID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return !taken, nil
}

func (s *serviceImpl) roomsOfType(ctx context.Context, roomType string) ([]roomModel.Room, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldRoomType,
				Value:    roomType,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: "asc"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return rooms, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	in, out, err := parseStayDates(checkIn, checkOut)
	if err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	free, err := s.roomFree(ctx, room, in, out, "")
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Available: free,
	}, nil
}

// GetAvailableRooms lists every room that can host the dates, optionally
// requiring a minimum capacity.
func (s *serviceImpl) GetAvailableRooms(ctx context.Context, checkIn, checkOut string, minCapacity int) (res dto.GetAvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	in, out, err := parseStayDates(checkIn, checkOut)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{}
	if minCapacity > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    roomModel.FieldCapacity,
			Value:    minCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    roomModel.TableName,
		})
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: "asc"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.Rooms = []roomDto.RoomResponse{}

	for _, room := range rooms {
		free, err := s.roomFree(ctx, room, in, out, "")
		if err != nil {
			return res, err
		}

		if !free {
			continue
		}

		roomRes := roomDto.RoomResponse{}
		roomRes.FromModel(room)
		res.Rooms = append(res.Rooms, roomRes)
	}

	res.Total = len(res.Rooms)

	return res, nil
}

// GetReassignmentOptions lists same-type rooms a booking could move to for
// its dates, flagging the room it currently occupies.
func (s *serviceImpl) GetReassignmentOptions(ctx context.Context, bookingID string) (res dto.GetRoomOptionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReassignmentOptions")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	current, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	candidates, err := s.roomsOfType(ctx, current.RoomType)
	if err != nil {
		return res, err
	}

	res.Rooms = []dto.RoomOptionResponse{}

	for _, room := range candidates {
		isCurrent := room.ID == booking.RoomID

		if !isCurrent {
			free, err := s.roomFree(ctx, room, booking.CheckIn, booking.CheckOut, booking.ID)
			if err != nil {
				return res, err
			}

			if !free {
				continue
			}
		}

		option := dto.RoomOptionResponse{IsCurrent: isCurrent}
		option.FromModel(room)
		res.Rooms = append(res.Rooms, option)
	}

	res.Total = len(res.Rooms)

	return res, nil
}

// GetStatusBoard reports every room's state for tonight: closed, under
// maintenance, occupied (with the occupying booking), or available.
func (s *serviceImpl) GetStatusBoard(ctx context.Context) (res dto.StatusBoardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStatusBoard")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: "asc"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.Date = today.Format(constant.DateFormat)
	res.Rooms = make([]dto.RoomStatusResponse, 0, len(rooms))

	for _, room := range rooms {
		entry := dto.RoomStatusResponse{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Status:     dto.RoomStatusAvailable,
		}

		switch room.MaintenanceStatus {
		case roomModel.MaintenanceStatusClosed:
			entry.Status = dto.RoomStatusClosed
		case roomModel.MaintenanceStatusMaintenance:
			entry.Status = dto.RoomStatusMaintenance
		default:
			booking, err := s.currentBooking(ctx, room.ID, today)
			if err != nil {
				return res, err
			}

			if booking.ID != constant.Empty {
				entry.Status = dto.RoomStatusOccupied

				occupant := dto.BookingResponse{}
				occupant.FromModel(booking)
				entry.CurrentBooking = &occupant
			}
		}

		res.Rooms = append(res.Rooms, entry)
	}

	return res, nil
}

func (s *serviceImpl) currentBooking(ctx context.Context, roomID string, today time.Time) (model.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "board_date_in",
				Field:    model.FieldCheckIn,
				Value:    today,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "board_date_out",
				Field:    model.FieldCheckOut,
				Value:    today,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}

	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current booking")

		return booking, fmt.Errorf("failed to get current booking: %w", err)
	}

	return booking, nil
}

// GetRoomHistory lists a room's bookings and maintenance records, optionally
// narrowed to a date window.
func (s *serviceImpl) GetRoomHistory(ctx context.Context, roomID, from, to string) (res dto.RoomHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	var fromDate, toDate time.Time

	if from != "" && to != "" {
		if fromDate, toDate, err = parseStayDates(from, to); err != nil {
			return res, err
		}
	}

	bookingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	maintenanceFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    maintenanceModel.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    maintenanceModel.TableName,
			},
		},
	}

	if !fromDate.IsZero() {
		bookingFilter.Filters = append(bookingFilter.Filters,
			gDto.Filter{
				ArgName:  "history_to",
				Field:    model.FieldCheckIn,
				Value:    toDate,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "history_from",
				Field:    model.FieldCheckOut,
				Value:    fromDate,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		)

		maintenanceFilter.Filters = append(maintenanceFilter.Filters,
			gDto.Filter{
				ArgName:  "history_to",
				Field:    maintenanceModel.FieldStartDate,
				Value:    toDate,
				Operator: gDto.FilterOperatorLess,
				Table:    maintenanceModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    maintenanceModel.FieldEndDate,
						Operator: gDto.FilterIsNull,
						Table:    maintenanceModel.TableName,
					},
					gDto.Filter{
						ArgName:  "history_from",
						Field:    maintenanceModel.FieldEndDate,
						Value:    fromDate,
						Operator: gDto.FilterOperatorGreater,
						Table:    maintenanceModel.TableName,
					},
				},
			},
		)
	}

	sort := gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: "desc"}

	bookings, err := s.bookingRepo.GetAll(ctx, sort, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	maintenances, err := s.maintenanceRepo.GetAll(ctx, gDto.QueryParams{SortBy: maintenanceModel.FieldStartDate, SortDir: "desc"}, maintenanceFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance records")

		return res, fmt.Errorf("failed to get maintenance records: %w", err)
	}

	res.RoomID = roomID

	bookingsRes := dto.GetBookingsResponse{}
	bookingsRes.FromModels(bookings, len(bookings), 0)
	res.Bookings = bookingsRes.Bookings

	maintenancesRes := maintenanceResponses(maintenances)
	res.Maintenances = maintenancesRes

	return res, nil
}

func (s *serviceImpl) GetDashboardStats(ctx context.Context) (res dto.DashboardStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDashboardStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.TotalBookings, err = s.bookingRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	res.PendingBookings, err = s.bookingRepo.Count(ctx, statusFilter(model.StatusPending))
	if err != nil {
		log.Error().Err(err).Msg("failed to count pending bookings")

		return res, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	res.ConfirmedBookings, err = s.bookingRepo.Count(ctx, statusFilter(model.StatusConfirmed))
	if err != nil {
		log.Error().Err(err).Msg("failed to count confirmed bookings")

		return res, fmt.Errorf("failed to count confirmed bookings: %w", err)
	}

	res.ConfirmedRevenue, err = s.bookingRepo.SumTotalPrice(ctx, model.StatusConfirmed)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum confirmed revenue")

		return res, fmt.Errorf("failed to sum confirmed revenue: %w", err)
	}

	return res, nil
}

// GetUnreadCount counts bookings no employee has opened yet.
func (s *serviceImpl) GetUnreadCount(ctx context.Context) (res dto.UnreadCountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUnreadCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReadByEmployee,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	res.Count, err = s.bookingRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread bookings")

		return res, fmt.Errorf("failed to count unread bookings: %w", err)
	}

	return res, nil
}

func maintenanceResponses(models []maintenanceModel.Maintenance) []maintenanceDto.MaintenanceResponse {
	res := make([]maintenanceDto.MaintenanceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

func statusFilter(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
