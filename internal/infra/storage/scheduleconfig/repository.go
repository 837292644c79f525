package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/pkg/dbmetrics"
	"github.com/dkmsk/DCS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (реализуется *sql.DB и *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"company_id",
	"service_id",
	"slot_granularity_minutes",
	"capacity_accounting",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"company_id",
			"service_id",
			"slot_granularity_minutes",
			"capacity_accounting",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			config.CompanyID,
			config.ServiceID,
			config.SlotGranularityMinutes,
			config.CapacityAccounting,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// сначала ищется конфигурация для конкретной услуги, затем общая для компании
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	if serviceID != nil {
		config, err := r.getByCompanyAndService(ctx, companyID, serviceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, err
		}
	}

	return r.getByCompanyAndService(ctx, companyID, nil)
}

// GetAllByCompany получает все конфигурации компании
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("service_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию компании (по паре company_id + service_id)
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"company_id",
			"service_id",
			"slot_granularity_minutes",
			"capacity_accounting",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			config.CompanyID,
			config.ServiceID,
			config.SlotGranularityMinutes,
			config.CapacityAccounting,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (company_id, COALESCE(service_id, 0)) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			capacity_accounting = EXCLUDED.capacity_accounting,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// getByCompanyAndService получает конфигурацию по компании и услуге (nil = общая)
func (r *Repository) getByCompanyAndService(ctx context.Context, companyID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"company_id": companyID})

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	} else {
		selectBuilder = selectBuilder.Where("service_id IS NULL")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByCompanyAndService - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	config, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByCompanyAndService - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.CompanyID,
		&config.ServiceID,
		&config.SlotGranularityMinutes,
		&config.CapacityAccounting,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
