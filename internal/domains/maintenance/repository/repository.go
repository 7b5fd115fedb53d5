package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/maintenance/model"
	gDto "innkeep/shared/dto"
	gRepo "innkeep/shared/repository"
)

type Maintenance interface {
	Insert(ctx context.Context, model model.Maintenance) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Maintenance, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Maintenance, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Maintenance]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Maintenance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Maintenance](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter matches ongoing maintenance records for the room whose
// [start_date, end_date) window intersects [checkIn, checkOut). A null
// end_date means the maintenance has no scheduled end and blocks every
// future date.
func OverlapFilter(roomID string, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
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
				Value:    model.StatusOngoing,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_check_out",
				Field:    model.FieldStartDate,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    model.FieldEndDate,
						Operator: gDto.FilterIsNull,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "overlap_check_in",
						Field:    model.FieldEndDate,
						Value:    checkIn,
						Operator: gDto.FilterOperatorGreater,
						Table:    model.TableName,
					},
				},
			},
		},
	}
}

func (repo *repositoryImpl) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	return repo.Exist(ctx, OverlapFilter(roomID, checkIn, checkOut)) //nolint:wrapcheck
}

func (repo *repositoryImpl) HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (bool, error) {
	return repo.ExistTx(ctx, sqltx, OverlapFilter(roomID, checkIn, checkOut)) //nolint:wrapcheck
}
