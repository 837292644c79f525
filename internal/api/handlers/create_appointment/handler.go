package create_appointment

import (
	"errors"
	"net/http"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	"github.com/dkmsk/DCS-SchedulingService/internal/api/middleware"
	createAppointment "github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgResourceConflict   = "выбранное время уже занято"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgUnknownResource    = "указанный ресурс не найден в компании"
	msgCompanyClosed      = "компания закрыта в выбранную дату"
	msgOutsideHours       = "запись выходит за рабочие часы компании"
	msgInvalidDate        = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Клиент записи - аутентифицированный пользователь
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrResourceConflict):
			h.logger.Warn("POST /appointments - Resource conflict: client_id=%d, company_id=%d", clientID, req.CompanyID)
			handlers.RespondError(w, http.StatusConflict, msgResourceConflict)

		case errors.Is(err, createAppointment.ErrCompanyNotFound):
			h.logger.Warn("POST /appointments - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrUnknownResource):
			h.logger.Warn("POST /appointments - Unknown resource: company_id=%d, error=%v", req.CompanyID, err)
			handlers.RespondNotFound(w, msgUnknownResource)

		case errors.Is(err, createAppointment.ErrCompanyClosed):
			h.logger.Warn("POST /appointments - Company closed: company_id=%d, date=%s", req.CompanyID, req.Date)
			handlers.RespondBadRequest(w, msgCompanyClosed)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: company_id=%d, date=%s", req.CompanyID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: company_id=%d, date=%s", req.CompanyID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidDuration),
			errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: company_id=%d, error=%v", req.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, company_id=%d, error=%v",
				clientID, req.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, company_id=%d",
		result.Appointment.ID, clientID, req.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
