package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	companyClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case расчёта открытых слотов для новой записи
// Чистая функция над снапшотом: реестр ресурсов и записи дня читаются заново
// на каждый вызов, внутреннего кэша у движка нет.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	companyClient   CompanyServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		companyClient:   companyClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case расчёта открытых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: company=%d, date=%s, duration=%d",
		req.CompanyID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию (рабочие часы)
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetAvailableSlots: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Определяем длительность: явная из запроса или из услуги
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 && req.ServiceID != nil {
		service, err := uc.companyClient.GetService(ctx, req.CompanyID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, companyClient.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		durationMinutes = service.DurationMinutes
	}
	if durationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: non-positive duration %d", durationMinutes)
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidDuration, durationMinutes)
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default config for company=%d", req.CompanyID)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Снапшот реестра ресурсов: активные посты
	posts, err := uc.companyClient.ListActiveResources(ctx, req.CompanyID, string(domain.ResourcePost))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list posts for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to list posts: %v", ErrInternal, err)
	}

	// 8. Запрошенные ресурсы должны существовать в снапшоте
	if req.PostID != nil && !containsResource(posts, *req.PostID) {
		uc.logger.Warn("GetAvailableSlots: post id=%d not in registry snapshot", *req.PostID)
		return nil, fmt.Errorf("%w: post id=%d", ErrUnknownResource, *req.PostID)
	}
	if req.MasterID != nil {
		masters, err := uc.companyClient.ListActiveResources(ctx, req.CompanyID, string(domain.ResourceMaster))
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list masters for company=%d: %v", req.CompanyID, err)
			return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
		}
		if !containsResource(masters, *req.MasterID) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not in registry snapshot", *req.MasterID)
			return nil, fmt.Errorf("%w: master id=%d", ErrUnknownResource, *req.MasterID)
		}
	}

	emptyResponse := &Response{
		Date:            req.Date,
		CompanyID:       req.CompanyID,
		DurationMinutes: durationMinutes,
		TotalPosts:      len(posts),
		Slots:           []Slot{},
	}

	// 9. Без активных постов слотов нет независимо от временной сетки
	if len(posts) == 0 {
		uc.logger.Info("GetAvailableSlots: company=%d has no active posts", req.CompanyID)
		return emptyResponse, nil
	}

	// 10. Рабочие часы на указанную дату
	workingHours := getWorkingHoursForDay(company, req.Date)
	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailableSlots: company is closed on %s", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 11. Генерируем сетку кандидатов
	candidates, err := generateTimeSlots(
		workingHours,
		config.SlotGranularityMinutes,
		durationMinutes,
		req.Date,
		now,
		config.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 12. Снапшот активных записей на эту дату
	filter := domain.AppointmentsFilter{
		CompanyID:       req.CompanyID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные записи занимают ресурсы
	}

	appointments, err := uc.appointmentRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 13. Рассчитываем доступность и отфильтровываем закрытые слоты
	slots, err := buildSlots(
		candidates,
		durationMinutes,
		appointments,
		len(posts),
		config.CapacityAccounting,
		req.MasterID,
		req.PostID,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d open slots for company=%d, date=%s",
		len(slots), req.CompanyID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		CompanyID:       req.CompanyID,
		DurationMinutes: durationMinutes,
		TotalPosts:      len(posts),
		Slots:           slots,
	}, nil
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
