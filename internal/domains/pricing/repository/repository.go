package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/pricing/model"
	gDto "innkeep/shared/dto"
	gRepo "innkeep/shared/repository"
)

type Holiday interface {
	Insert(ctx context.Context, model model.Holiday) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Holiday, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Holiday, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetInRange(ctx context.Context, checkIn, checkOut time.Time) ([]model.Holiday, error)
}

type holidayRepositoryImpl struct {
	gRepo.Repository[model.Holiday]
	db   *postgres.Connection
	otel otel.Otel
}

func NewHoliday(db *postgres.Connection, otel otel.Otel) Holiday {
	return &holidayRepositoryImpl{
		Repository: gRepo.NewRepository[model.Holiday](model.HolidayEntityName, model.HolidayTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetInRange fetches every holiday falling on a night of [checkIn, checkOut).
func (repo *holidayRepositoryImpl) GetInRange(ctx context.Context, checkIn, checkOut time.Time) ([]model.Holiday, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "range_start",
				Field:    model.FieldDate,
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.HolidayTableName,
			},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    model.FieldDate,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLess,
				Table:    model.HolidayTableName,
			},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter) //nolint:wrapcheck
}

type RateRule interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RateRule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RateRule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.RateRule, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.RateRule) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetActiveInRange(ctx context.Context, checkIn, checkOut time.Time) ([]model.RateRule, error)
}

type ruleRepositoryImpl struct {
	gRepo.Repository[model.RateRule]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRateRule(db *postgres.Connection, otel otel.Otel) RateRule {
	return &ruleRepositoryImpl{
		Repository: gRepo.NewRepository[model.RateRule](model.RuleEntityName, model.RuleTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetActiveInRange fetches active rules whose [start_date, end_date] window
// touches any night of [checkIn, checkOut). Category scoping is applied per
// night by the caller.
func (repo *ruleRepositoryImpl) GetActiveInRange(ctx context.Context, checkIn, checkOut time.Time) ([]model.RateRule, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RuleTableName,
			},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    model.FieldStartDate,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLess,
				Table:    model.RuleTableName,
			},
			gDto.Filter{
				ArgName:  "range_start",
				Field:    model.FieldEndDate,
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.RuleTableName,
			},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter) //nolint:wrapcheck
}

type RateAudit interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.RateAuditLog) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RateAuditLog, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RateAuditLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type auditRepositoryImpl struct {
	gRepo.Repository[model.RateAuditLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRateAudit(db *postgres.Connection, otel otel.Otel) RateAudit {
	return &auditRepositoryImpl{
		Repository: gRepo.NewRepository[model.RateAuditLog](model.AuditEntityName, model.AuditTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
