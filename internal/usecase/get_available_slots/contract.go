package get_available_slots

import (
	"context"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByCompanyWithFilter получает записи компании на дату (снапшот дня)
	GetByCompanyWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.ScheduleConfig, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*companyservice.Service, error)
	ListActiveResources(ctx context.Context, companyID int64, kind string) ([]companyservice.Resource, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
