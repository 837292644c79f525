package move_appointment

import (
	"context"

	moveAppointment "github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
)

type MoveAppointmentUseCase interface {
	Execute(ctx context.Context, req *moveAppointment.Request) (*moveAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
