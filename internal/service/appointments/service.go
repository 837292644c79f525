package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	companyClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	companyClient   CompanyServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	companyClient CompanyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		companyClient:   companyClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь видит только свою запись
// или если он является менеджером компании
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetCompanyAppointments получает записи компании с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, мастеру, посту и статусу
// Доступно только менеджерам компании
func (s *Service) GetCompanyAppointments(ctx context.Context, req *models.GetCompanyAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCompanyAppointments: fetching appointments for company=%d, user=%d",
		req.CompanyID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.CompanyID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyAppointments: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyAppointments: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyAppointments: successfully fetched %d appointments for company=%d",
		len(appointments), req.CompanyID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь видит свою запись или если он менеджер компании
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.ClientID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, appt.CompanyID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

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
