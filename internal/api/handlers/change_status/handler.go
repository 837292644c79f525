package change_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	changeStatus "github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "неизвестный статус"
	msgInvalidTransition    = "переход в указанный статус невозможен"
	msgInvalidAmount        = "некорректная сумма оплаты"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status %q: appointment_id=%d", req.Status, appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition to %q: appointment_id=%d", req.Status, appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, changeStatus.ErrInvalidAmount):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid amount: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to change status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status changed: appointment_id=%d, status=%s, notified=%t",
		appointmentID, req.Status, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
