package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	companyClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo    ConfigRepository
	companyClient CompanyServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		companyClient: companyClient,
		logger:        logger,
	}
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Публичный метод. Приоритет: service > global. Если в БД ничего нет,
// возвращается конфигурация по умолчанию.
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for company=%d, service=%v", req.CompanyID, req.ServiceID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetWithHierarchy: no stored config for company=%d, using defaults", req.CompanyID)
			defaultConfig := domain.DefaultScheduleConfig()
			defaultConfig.CompanyID = req.CompanyID
			return models.FromDomainConfig(defaultConfig), nil
		}
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// GetAllByCompany получает все конфигурации компании
// Доступно только менеджерам компании
func (s *Service) GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByCompany: fetching configs for company=%d by user=%d", companyID, userID)

	if err := s.checkManagerAccess(ctx, companyID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetAllByCompany: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetAllByCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByCompany: successfully fetched %d configs for company=%d", len(configs), companyID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию расписания
// Доступно только менеджерам компании
// Ключ - пара (companyId, serviceId); nil serviceId = общая конфигурация компании
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for company=%d, service=%v by user=%d",
		req.CompanyID, req.ServiceID, req.UserID)

	// 1. Валидируем параметры конфигурации
	if err := s.validateConfigData(req.SlotGranularityMinutes, req.AdvanceBookingDays, req.MinBookingNoticeMinutes); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.CompanyID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Если указан serviceID, проверяем его существование
	if req.ServiceID != nil {
		if _, err := s.companyClient.GetService(ctx, req.CompanyID, *req.ServiceID); err != nil {
			if errors.Is(err, companyClient.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%d not found in company=%d", *req.ServiceID, req.CompanyID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 4. Создаем или обновляем конфигурацию
	config, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Upsert: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully upserted config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (s *Service) checkManagerAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := s.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			s.logger.Warn("checkManagerAccess: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get company: %v", ErrInternal, err)
	}

	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of company=%d", userID, companyID)
	return ErrAccessDenied
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(granularity, advanceDays, minNotice int) error {
	if granularity < domain.MinSlotGranularityMinutes || granularity > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if advanceDays < domain.MinAdvanceBookingDays || advanceDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if minNotice < 0 || minNotice > 10080 { // максимум 7 дней в минутах
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and 10080", ErrInvalidInput)
	}

	return nil
}
