package update_schedule_config

import (
	"context"

	"github.com/dkmsk/DCS-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
