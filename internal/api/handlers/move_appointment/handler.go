package move_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	moveAppointment "github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "запись не найдена"
	msgTerminalStatus       = "запись завершена или отменена и не может быть перенесена"
	msgResourceConflict     = "целевое время уже занято"
	msgUnknownResource      = "указанный ресурс не найден в компании"
	msgCompanyClosed        = "компания закрыта в выбранную дату"
	msgOutsideHours         = "запись выходит за рабочие часы компании"
	msgInvalidDate          = "некорректная дата переноса"
	msgDateTooFar           = "дата переноса слишком далеко в будущем"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/move - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/move - Terminal status: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)

		case errors.Is(err, moveAppointment.ErrResourceConflict):
			h.logger.Warn("PATCH /appointments/{id}/move - Resource conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgResourceConflict)

		case errors.Is(err, moveAppointment.ErrUnknownResource):
			h.logger.Warn("PATCH /appointments/{id}/move - Unknown resource: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondNotFound(w, msgUnknownResource)

		case errors.Is(err, moveAppointment.ErrCompanyClosed):
			h.logger.Warn("PATCH /appointments/{id}/move - Company closed: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgCompanyClosed)

		case errors.Is(err, moveAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /appointments/{id}/move - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, moveAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/move - Invalid date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, moveAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /appointments/{id}/move - Date too far in future: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, moveAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/move - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/move - Failed to move appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/move - Appointment moved: appointment_id=%d, new_date=%s, new_start=%s",
		appointmentID, req.NewDate, req.NewStartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
