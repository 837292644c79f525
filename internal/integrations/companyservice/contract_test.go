package companyservice_test

import (
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	appointmentsService "github.com/dkmsk/DCS-SchedulingService/internal/service/appointments"
	configService "github.com/dkmsk/DCS-SchedulingService/internal/service/config"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
)

// Клиент обязан удовлетворять контрактам всех потребителей из cmd/main.go
var (
	_ get_available_slots.CompanyServiceClient = (*companyservice.Client)(nil)
	_ create_appointment.CompanyServiceClient  = (*companyservice.Client)(nil)
	_ move_appointment.CompanyServiceClient    = (*companyservice.Client)(nil)
	_ change_status.CompanyServiceClient       = (*companyservice.Client)(nil)
	_ appointmentsService.CompanyServiceClient = (*companyservice.Client)(nil)
	_ configService.CompanyServiceClient       = (*companyservice.Client)(nil)
)
