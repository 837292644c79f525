package appointments

import (
	"context"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
