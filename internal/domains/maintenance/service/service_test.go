package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	maintenanceMocks "innkeep/internal/domains/maintenance/mocks"
	"innkeep/internal/domains/maintenance/model"
	"innkeep/internal/domains/maintenance/model/dto"
	"innkeep/internal/domains/maintenance/service"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

func newMaintenanceService(t *testing.T) (service.Maintenance, *maintenanceMocks.MockMaintenance, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := maintenanceMocks.NewMockMaintenance(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockRoomRepo, mockCache
}

func mustDate(t *testing.T, value string) (parsed time.Time) {
	t.Helper()

	parsed, err := timezone.Parse(constant.DateFormat, value)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", value, err)
	}

	return parsed
}

func TestMaintenanceService_Create(t *testing.T) {
	svc, mockRepo, mockRoomRepo, mockCache := newMaintenanceService(t)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	room := roomModel.Room{
		ID:                "room-1",
		RoomNumber:        "101",
		RoomType:          "Deluxe Room",
		MaintenanceStatus: roomModel.MaintenanceStatusOperational,
	}

	tests := []struct {
		name      string
		req       dto.CreateMaintenanceRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation flags the room",
			req:  dto.CreateMaintenanceRequest{RoomID: "room-1", StartDate: "2025-11-01", Reason: "Plumbing repair"},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockRoomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room not found",
			req:  dto.CreateMaintenanceRequest{RoomID: "missing-room", StartDate: "2025-11-01", Reason: "Plumbing repair"},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "invalid start date",
			req:  dto.CreateMaintenanceRequest{RoomID: "room-1", StartDate: "01-11-2025", Reason: "Plumbing repair"},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

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

func TestMaintenanceService_Complete(t *testing.T) {
	svc, mockRepo, mockRoomRepo, mockCache := newMaintenanceService(t)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ongoing := model.Maintenance{
		ID:        "maintenance-1",
		RoomID:    "room-1",
		StartDate: mustDate(t, "2025-11-01"),
		Reason:    "Plumbing repair",
		Status:    model.StatusOngoing,
	}

	tests := []struct {
		name      string
		req       dto.CompleteMaintenanceRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "completion restores the room when no other window is open",
			req:  dto.CompleteMaintenanceRequest{EndDate: "2025-11-05"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ongoing, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRoomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room stays out of service while another window is open",
			req:  dto.CompleteMaintenanceRequest{EndDate: "2025-11-05"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ongoing, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "record not found",
			req:  dto.CompleteMaintenanceRequest{EndDate: "2025-11-05"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Maintenance{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "already completed",
			req:  dto.CompleteMaintenanceRequest{EndDate: "2025-11-05"},
			setupMock: func() {
				done := ongoing
				done.Status = model.StatusCompleted

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(done, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "end date before start date",
			req:  dto.CompleteMaintenanceRequest{EndDate: "2025-10-30"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ongoing, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Complete(ctx, tt.req, "maintenance-1")

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

func TestMaintenanceService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newMaintenanceService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, record not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Maintenance{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), "maintenance-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaintenanceService_Update(t *testing.T) {
	svc, mockRepo, _, mockCache := newMaintenanceService(t)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.UpdateMaintenanceRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateMaintenanceRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "record not found",
			req:  dto.UpdateMaintenanceRequest{Reason: "Updated reason"},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "successful update",
			req:  dto.UpdateMaintenanceRequest{Reason: "Updated reason"},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
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
			err := svc.Update(ctx, tt.req, "maintenance-1")

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
