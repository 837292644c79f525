package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/pkg/dbmetrics"
	"github.com/dkmsk/DCS-SchedulingService/pkg/psqlbuilder"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// appointmentColumns полный список колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"company_id",
	"client_id",
	"client_contact_id",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"master_id",
	"post_id",
	"service_id",
	"status",
	"amount",
	"is_paid",
	"payment_method",
	"service_name",
	"comment",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Проверка конфликтов ресурсов выполняется в usecase до вставки, в той же
// сериализуемой транзакции - это и есть storage-уровневая защита от гонки двух
// конкурирующих бронирований одного ресурса.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"company_id",
			"client_id",
			"client_contact_id",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"master_id",
			"post_id",
			"service_id",
			"status",
			"amount",
			"is_paid",
			"payment_method",
			"service_name",
			"comment",
		).
		Values(
			appt.CompanyID,
			appt.ClientID,
			appt.ClientContactID,
			appt.Date,
			appt.StartTime,
			appt.DurationMinutes,
			appt.MasterID,
			appt.PostID,
			appt.ServiceID,
			appt.Status,
			appt.Amount,
			appt.IsPaid,
			appt.PaymentMethod,
			appt.ServiceName,
			appt.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: запись читается перед
	// переносом или сменой статуса и не должна измениться под нами
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByCompanyWithFilter получает записи компании с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, мастеру, посту, статусу и включению
// неактивных (завершённых и отменённых) записей.
//
// Внутри транзакции выборка на конкретную дату блокируется (FOR UPDATE) -
// так снапшот дня, по которому считались конфликты, не меняется до коммита.
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	// Фильтрация по ресурсам
	if filter.MasterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}
	if filter.PostID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"post_id": *filter.PostID})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем терминальные
		terminalStatusStrings := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminalStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Move переносит запись на новую дату/время и переназначает ресурсы
// Валидация конфликтов выполняется в usecase до вызова, в той же транзакции.
// Возвращает обновлённую запись целиком.
func (r *Repository) Move(ctx context.Context, id int64, date time.Time, startTime types.TimeString, masterID, postID *int64) (*domain.Appointment, error) {
	builder := psqlbuilder.Update("appointments").
		Set("appointment_date", date).
		Set("start_time", startTime).
		Set("master_id", masterID).
		Set("post_id", postID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, builder, "Move")
}

// UpdateStatus обновляет статус записи вместе с платёжными полями
// Платёжные поля имеют смысл только для статуса completed; связка
// amount/is_paid рассчитывается в usecase, репозиторий пишет как есть.
// Возвращает обновлённую запись целиком.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, amount *float64, isPaid bool, paymentMethod *string) (*domain.Appointment, error) {
	builder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("amount", amount).
		Set("is_paid", isPaid).
		Set("payment_method", paymentMethod).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, builder, "UpdateStatus")
}

// Cancel отменяет запись с указанием причины (nil = без причины)
// Возвращает обновлённую запись целиком.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) (*domain.Appointment, error) {
	builder := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, builder, "Cancel")
}

// updateReturning выполняет update с RETURNING полного набора колонок
// и возвращает обновлённую запись; отсутствие строки - ErrAppointmentNotFound.
func (r *Repository) updateReturning(ctx context.Context, builder squirrel.UpdateBuilder, op string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return appt, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку в domain.Appointment
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CompanyID,
		&appt.ClientID,
		&appt.ClientContactID,
		&appt.Date,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.MasterID,
		&appt.PostID,
		&appt.ServiceID,
		&appt.Status,
		&appt.Amount,
		&appt.IsPaid,
		&appt.PaymentMethod,
		&appt.ServiceName,
		&appt.Comment,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
