package scheduleconfig_test

import (
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	configService "github.com/dkmsk/DCS-SchedulingService/internal/service/config"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
)

// Репозиторий конфигурации обязан удовлетворять контрактам всех потребителей
var (
	_ get_available_slots.ConfigRepository = (*configRepo.Repository)(nil)
	_ create_appointment.ConfigRepository  = (*configRepo.Repository)(nil)
	_ move_appointment.ConfigRepository    = (*configRepo.Repository)(nil)
	_ configService.ConfigRepository       = (*configRepo.Repository)(nil)
)
