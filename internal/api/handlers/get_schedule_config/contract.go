package get_schedule_config

import (
	"context"

	"github.com/dkmsk/DCS-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
	GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
