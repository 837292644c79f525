package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	companyClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case создания записи
// Проверка конфликтов и вставка выполняются в одной serializable-транзакции:
// снапшот записей дня читается с блокировкой, поэтому две конкурентные заявки
// на один ресурс не могут пройти детектор одновременно.
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

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: company=%d, client=%d, date=%s, start=%s",
		req.CompanyID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию (рабочие часы)
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateAppointment: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Определяем длительность и денормализуем данные услуги
	durationMinutes := req.DurationMinutes
	var serviceName *string
	var amount *float64

	if req.ServiceID != nil {
		service, err := uc.companyClient.GetService(ctx, req.CompanyID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, companyClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if durationMinutes == 0 {
			durationMinutes = service.DurationMinutes
		}
		// Имя услуги фиксируется в записи на момент создания
		name := service.Name
		serviceName = &name
	}
	if durationMinutes <= 0 {
		uc.logger.Warn("CreateAppointment: non-positive duration %d", durationMinutes)
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidDuration, durationMinutes)
	}

	// 5. Интервал кандидата в минутах от полуночи
	interval, err := domain.NewInterval(req.StartTime, durationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateAppointment: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
	}

	// 7. Валидация даты и минимального времени до записи
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: booking notice check failed: %v", err)
		return nil, err
	}

	// 8. Интервал должен целиком попадать в рабочие часы
	workingHours := getWorkingHoursForDay(company, req.Date)
	if err := validateWorkingHours(workingHours, interval); err != nil {
		uc.logger.Warn("CreateAppointment: working hours check failed: %v", err)
		return nil, err
	}

	// 9. Снапшот реестра ресурсов: назначенные ресурсы должны существовать
	posts, err := uc.companyClient.ListActiveResources(ctx, req.CompanyID, string(domain.ResourcePost))
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list posts for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to list posts: %v", ErrInternal, err)
	}
	if req.PostID != nil && !containsResource(posts, *req.PostID) {
		uc.logger.Warn("CreateAppointment: post id=%d not in registry snapshot", *req.PostID)
		return nil, fmt.Errorf("%w: post id=%d", ErrUnknownResource, *req.PostID)
	}
	if req.MasterID != nil {
		masters, err := uc.companyClient.ListActiveResources(ctx, req.CompanyID, string(domain.ResourceMaster))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list masters for company=%d: %v", req.CompanyID, err)
			return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
		}
		if !containsResource(masters, *req.MasterID) {
			uc.logger.Warn("CreateAppointment: master id=%d not in registry snapshot", *req.MasterID)
			return nil, fmt.Errorf("%w: master id=%d", ErrUnknownResource, *req.MasterID)
		}
	}

	// 10. Детектор конфликтов и вставка в одной serializable-транзакции
	var created *domain.Appointment

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Снапшот активных записей дня читается с FOR UPDATE внутри транзакции
		filter := domain.AppointmentsFilter{
			CompanyID:       req.CompanyID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByCompanyWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Конфликты по осям пост/мастер независимо
		candidate := domain.ConflictCandidate{
			Interval: interval,
			MasterID: req.MasterID,
			PostID:   req.PostID,
		}
		if conflicts := domain.FindConflicts(candidate, appointments, nil); len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: %d conflicts for company=%d, date=%s, start=%s",
				len(conflicts), req.CompanyID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrResourceConflict
		}

		// Запись без поста расходует единицу общей ёмкости
		if req.PostID == nil && config.CapacityAccounting {
			if occupiedCapacity(interval, appointments) >= len(posts) {
				uc.logger.Warn("CreateAppointment: no free capacity for company=%d, date=%s, start=%s",
					req.CompanyID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrResourceConflict
			}
		}

		appt := &domain.Appointment{
			CompanyID:       req.CompanyID,
			ClientID:        req.ClientID,
			ClientContactID: req.ClientContactID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			MasterID:        req.MasterID,
			PostID:          req.PostID,
			ServiceID:       req.ServiceID,
			Status:          domain.StatusNew,
			Amount:          amount,
			ServiceName:     serviceName,
			Comment:         req.Comment,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrResourceConflict) {
			return nil, ErrResourceConflict
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for company=%d", created.ID, req.CompanyID)

	return &Response{Appointment: created}, nil
}

// occupiedCapacity считает занятую ёмкость на интервале:
// различные занятые посты плюс активные записи без назначенного поста.
func occupiedCapacity(interval domain.Interval, appointments []*domain.Appointment) int {
	occupiedPosts := make(map[int64]struct{})
	unassigned := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		apptInterval, err := appt.Interval()
		if err != nil {
			continue
		}
		if !interval.Overlaps(apptInterval) {
			continue
		}

		if appt.PostID != nil {
			occupiedPosts[*appt.PostID] = struct{}{}
		} else {
			unassigned++
		}
	}

	return len(occupiedPosts) + unassigned
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
