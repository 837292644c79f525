package config

import (
	"context"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.ScheduleConfig, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*companyservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
