package cancel_appointment

import (
	"context"

	changeStatus "github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*changeStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
