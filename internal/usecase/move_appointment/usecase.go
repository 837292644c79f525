package move_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	companyClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case переноса записи на другое время/дату/ресурс
// Сама переносимая запись исключается из детектора конфликтов по id:
// запись не конфликтует со своим собственным старым интервалом, что
// позволяет двигать её внутри занимаемого окна.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	companyClient   CompanyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		companyClient:   companyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: id=%d, newDate=%s, newStart=%s",
		req.AppointmentID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var moved *domain.Appointment

	// 3. Чтение, проверка конфликтов и перенос в одной serializable-транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Запись читается с FOR UPDATE внутри транзакции
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// Завершённые и отменённые записи неподвижны
		if !appt.CanBeMoved() {
			uc.logger.Warn("MoveAppointment: appointment id=%d has terminal status %s", appt.ID, appt.Status)
			return ErrInvalidTransition
		}

		// Целевые ресурсы: nil = оставить прежние, Clear* = снять назначение
		targetMasterID := appt.MasterID
		if req.NewMasterID != nil {
			targetMasterID = req.NewMasterID
		}
		if req.ClearMaster {
			targetMasterID = nil
		}

		targetPostID := appt.PostID
		if req.NewPostID != nil {
			targetPostID = req.NewPostID
		}
		if req.ClearPost {
			targetPostID = nil
		}

		// Целевой интервал: новое начало, прежняя длительность
		interval, err := domain.NewInterval(req.NewStartTime, appt.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// Конфигурация расписания для ограничений даты
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, appt.CompanyID, appt.ServiceID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultScheduleConfig()
		}

		if err := validateDate(req.NewDate, now, config.AdvanceBookingDays); err != nil {
			return err
		}

		// Целевой интервал должен попадать в рабочие часы
		company, err := uc.companyClient.GetCompany(txCtx, appt.CompanyID)
		if err != nil {
			return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
		}
		if err := validateWorkingHours(getWorkingHoursForDay(company, req.NewDate), interval); err != nil {
			return err
		}

		// Целевые ресурсы должны существовать в снапшоте реестра
		if targetPostID != nil {
			posts, err := uc.companyClient.ListActiveResources(txCtx, appt.CompanyID, string(domain.ResourcePost))
			if err != nil {
				return fmt.Errorf("%w: failed to list posts: %v", ErrInternal, err)
			}
			if !containsResource(posts, *targetPostID) {
				return fmt.Errorf("%w: post id=%d", ErrUnknownResource, *targetPostID)
			}
		}
		if targetMasterID != nil {
			masters, err := uc.companyClient.ListActiveResources(txCtx, appt.CompanyID, string(domain.ResourceMaster))
			if err != nil {
				return fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
			}
			if !containsResource(masters, *targetMasterID) {
				return fmt.Errorf("%w: master id=%d", ErrUnknownResource, *targetMasterID)
			}
		}

		// Снапшот активных записей на целевую дату
		filter := domain.AppointmentsFilter{
			CompanyID:       appt.CompanyID,
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByCompanyWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Детектор конфликтов с исключением самой записи
		candidate := domain.ConflictCandidate{
			Interval: interval,
			MasterID: targetMasterID,
			PostID:   targetPostID,
		}
		if conflicts := domain.FindConflicts(candidate, appointments, &appt.ID); len(conflicts) > 0 {
			uc.logger.Warn("MoveAppointment: %d conflicts for id=%d at %s %s",
				len(conflicts), appt.ID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)
			return ErrResourceConflict
		}

		moved, err = uc.appointmentRepo.Move(txCtx, appt.ID, req.NewDate, req.NewStartTime, targetMasterID, targetPostID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to move appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrAppointmentNotFound),
			errors.Is(txErr, ErrInvalidTransition),
			errors.Is(txErr, ErrResourceConflict),
			errors.Is(txErr, ErrUnknownResource),
			errors.Is(txErr, ErrInvalidDate),
			errors.Is(txErr, ErrDateTooFarInFuture),
			errors.Is(txErr, ErrCompanyClosed),
			errors.Is(txErr, ErrOutsideWorkingHours),
			errors.Is(txErr, ErrInvalidInput):
			return nil, txErr
		case errors.Is(txErr, ErrInternal):
			uc.logger.Error("MoveAppointment: transaction failed: %v", txErr)
			return nil, txErr
		default:
			uc.logger.Error("MoveAppointment: transaction failed: %v", txErr)
			return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
		}
	}

	uc.logger.Info("MoveAppointment: appointment id=%d moved to %s %s",
		moved.ID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	return &Response{Appointment: moved}, nil
}

// getWorkingHoursForDay возвращает расписание работы компании на указанный день недели
func getWorkingHoursForDay(company *companyClient.Company, date time.Time) companyClient.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return company.WorkingHours.Monday
	case time.Tuesday:
		return company.WorkingHours.Tuesday
	case time.Wednesday:
		return company.WorkingHours.Wednesday
	case time.Thursday:
		return company.WorkingHours.Thursday
	case time.Friday:
		return company.WorkingHours.Friday
	case time.Saturday:
		return company.WorkingHours.Saturday
	case time.Sunday:
		return company.WorkingHours.Sunday
	default:
		return companyClient.DaySchedule{IsOpen: false}
	}
}

// containsResource проверяет наличие активного ресурса в снапшоте
func containsResource(resources []companyClient.Resource, id int64) bool {
	for _, r := range resources {
		if r.ID == id && r.Active {
			return true
		}
	}
	return false
}
