package appointment_test

import (
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	appointmentsService "github.com/dkmsk/DCS-SchedulingService/internal/service/appointments"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
)

// Репозиторий обязан удовлетворять контрактам всех потребителей,
// с которыми он связывается в cmd/main.go
var (
	_ get_available_slots.AppointmentRepository = (*appointmentRepo.Repository)(nil)
	_ create_appointment.AppointmentRepository  = (*appointmentRepo.Repository)(nil)
	_ move_appointment.AppointmentRepository    = (*appointmentRepo.Repository)(nil)
	_ change_status.AppointmentRepository       = (*appointmentRepo.Repository)(nil)
	_ appointmentsService.AppointmentRepository = (*appointmentRepo.Repository)(nil)
)
