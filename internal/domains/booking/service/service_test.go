package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	mailerMocks "innkeep/infras/mailer/mocks"
	"innkeep/infras/otel/mocks"
	bookingMocks "innkeep/internal/domains/booking/mocks"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/service"
	maintenanceMocks "innkeep/internal/domains/maintenance/mocks"
	pricingMocks "innkeep/internal/domains/pricing/mocks"
	pricingDto "innkeep/internal/domains/pricing/model/dto"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

type bookingMockSet struct {
	bookingRepo     *bookingMocks.MockBooking
	roomRepo        *roomMocks.MockRoom
	maintenanceRepo *maintenanceMocks.MockMaintenance
	pricing         *pricingMocks.MockPricing
	mailer          *mailerMocks.MockMailer
	cache           *cacheMocks.MockRedisCache
}

func newBookingService(t *testing.T) (service.Booking, bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := bookingMockSet{
		bookingRepo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo:        roomMocks.NewMockRoom(ctrl),
		maintenanceRepo: maintenanceMocks.NewMockMaintenance(ctrl),
		pricing:         pricingMocks.NewMockPricing(ctrl),
		mailer:          mailerMocks.NewMockMailer(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(set.bookingRepo, set.roomRepo, set.maintenanceRepo, set.pricing, set.mailer, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func mustDate(t *testing.T, value string) (parsed time.Time) {
	t.Helper()

	parsed, err := timezone.Parse(constant.DateFormat, value)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", value, err)
	}

	return parsed
}

func operationalRoom() roomModel.Room {
	return roomModel.Room{
		ID:                "room-1",
		RoomNumber:        "101",
		RoomType:          "Deluxe Room",
		PricePerNight:     150,
		Capacity:          2,
		MaintenanceStatus: roomModel.MaintenanceStatusOperational,
	}
}

func TestBookingService_Create(t *testing.T) {
	svc, set := newBookingService(t)

	baseReq := dto.CreateBookingRequest{
		RoomID:        "room-1",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
		CheckIn:       "2025-12-24",
		CheckOut:      "2025-12-26",
	}

	tests := []struct {
		name      string
		mutate    func(req *dto.CreateBookingRequest)
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "invalid check_in date",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckIn = "24-12-2025"
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "check_out not after check_in",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckIn = "2025-12-26"
				req.CheckOut = "2025-12-24"
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:   "room not found",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:   "room not operational",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				room := operationalRoom()
				room.MaintenanceStatus = roomModel.MaintenanceStatusClosed

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name:   "room under maintenance for the dates",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name:   "room already booked for the dates",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:   "pricing blackout aborts the booking",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				set.pricing.EXPECT().
					QuoteStay(gomock.Any(), 150.0, "Deluxe Room", gomock.Any(), gomock.Any()).
					Return(pricingDto.QuoteResponse{}, failure.Unprocessable("2025-12-25 is a blackout date (Christmas), booking is not available"))
			},
			wantErr: true,
		},
		{
			name: "no room of the type is free",
			mutate: func(req *dto.CreateBookingRequest) {
				req.RoomID = ""
				req.RoomType = "Deluxe Room"
			},
			setupMock: func() {
				set.roomRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]roomModel.Room{operationalRoom()}, nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "allocator picks the lowest free room number",
			mutate: func(req *dto.CreateBookingRequest) {
				req.RoomID = ""
				req.RoomType = "Deluxe Room"
			},
			setupMock: func() {
				first := operationalRoom()

				second := operationalRoom()
				second.ID = "room-2"
				second.RoomNumber = "102"
				second.PricePerNight = 180

				set.roomRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]roomModel.Room{first, second}, nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				// The first free candidate's rate reaching the quote proves
				// which room won the allocation.
				set.pricing.EXPECT().
					QuoteStay(gomock.Any(), 150.0, "Deluxe Room", gomock.Any(), gomock.Any()).
					Return(pricingDto.QuoteResponse{}, errors.New("pricing unavailable"))
			},
			wantErr: true,
		},
		{
			name:   "transaction begin failure",
			mutate: func(req *dto.CreateBookingRequest) {},
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				set.pricing.EXPECT().
					QuoteStay(gomock.Any(), 150.0, "Deluxe Room", gomock.Any(), gomock.Any()).
					Return(pricingDto.QuoteResponse{Nights: 2, TotalPrice: 450}, nil)

				set.roomRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseReq
			tt.mutate(&req)
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	svc, set := newBookingService(t)

	booking := model.Booking{
		ID:            "booking-1",
		RoomID:        "room-1",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
		CheckIn:       mustDate(t, "2025-12-24"),
		CheckOut:      mustDate(t, "2025-12-26"),
		TotalPrice:    450,
		Status:        model.StatusPending,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache hit",
			id:   "booking-1",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "booking-1",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	svc, set := newBookingService(t)

	set.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.mailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	pending := model.Booking{
		ID:            "booking-1",
		RoomID:        "room-1",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
		CheckIn:       mustDate(t, "2025-12-24"),
		CheckOut:      mustDate(t, "2025-12-26"),
		Status:        model.StatusPending,
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "booking not found",
			req:  dto.UpdateBookingRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "cancelled booking cannot change status",
			req:  dto.UpdateBookingRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				cancelled := pending
				cancelled.Status = model.StatusCancelled

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "reassignment rejects a different room type",
			req:  dto.UpdateBookingRequest{RoomID: "room-2"},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				suite := operationalRoom()
				suite.ID = "room-2"
				suite.RoomNumber = "201"
				suite.RoomType = "Suite"

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(suite, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "reassignment rejects an occupied room",
			req:  dto.UpdateBookingRequest{RoomID: "room-2"},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				next := operationalRoom()
				next.ID = "room-2"
				next.RoomNumber = "102"

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(next, nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "successful confirmation",
			req:  dto.UpdateBookingRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.bookingRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "successful cancellation",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.bookingRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	svc, set := newBookingService(t)

	tests := []struct {
		name          string
		setupMock     func()
		wantErr       bool
		wantAvailable bool
	}{
		{
			name: "room is free",
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)
			},
			wantAvailable: true,
		},
		{
			name: "room has an overlapping booking",
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operationalRoom(), nil)

				set.maintenanceRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.bookingRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)
			},
			wantAvailable: false,
		},
		{
			name: "closed room is never available",
			setupMock: func() {
				room := operationalRoom()
				room.MaintenanceStatus = roomModel.MaintenanceStatusClosed

				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantAvailable: false,
		},
		{
			name: "room not found",
			setupMock: func() {
				set.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CheckAvailability(context.Background(), "room-1", "2025-12-24", "2025-12-26")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, res.Available)
		})
	}
}

func TestBookingService_GetAvailableRooms(t *testing.T) {
	svc, set := newBookingService(t)

	first := operationalRoom()

	second := operationalRoom()
	second.ID = "room-2"
	second.RoomNumber = "102"

	set.roomRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{first, second}, nil)

	set.maintenanceRepo.EXPECT().
		HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
		Return(false, nil)

	set.bookingRepo.EXPECT().
		HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").
		Return(false, nil)

	set.maintenanceRepo.EXPECT().
		HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
		Return(false, nil)

	set.bookingRepo.EXPECT().
		HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "").
		Return(true, nil)

	res, err := svc.GetAvailableRooms(context.Background(), "2025-12-24", "2025-12-26", 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "101", res.Rooms[0].RoomNumber)
}

func TestBookingService_GetDashboardStats(t *testing.T) {
	svc, set := newBookingService(t)

	set.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil)
	set.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	set.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(6, nil)
	set.bookingRepo.EXPECT().SumTotalPrice(gomock.Any(), model.StatusConfirmed).Return(2700.0, nil)

	res, err := svc.GetDashboardStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 10, res.TotalBookings)
	assert.Equal(t, 3, res.PendingBookings)
	assert.Equal(t, 6, res.ConfirmedBookings)
	assert.Equal(t, 2700.0, res.ConfirmedRevenue)
}

func TestBookingService_GetUnreadCount(t *testing.T) {
	svc, set := newBookingService(t)

	set.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)

	res, err := svc.GetUnreadCount(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, res.Count)
}
