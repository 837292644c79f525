package get_company_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	"github.com/dkmsk/DCS-SchedulingService/internal/api/middleware"
	"github.com/dkmsk/DCS-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidQuery     = "некорректные параметры фильтрации"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgCompanyNotFound  = "компания не найдена"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/appointments - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(r.URL.Query(), companyID, userID)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/appointments - Invalid query: company_id=%d, error=%v", companyID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetCompanyAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/appointments - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/appointments - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/appointments - Invalid filter: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /companies/{id}/appointments - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/appointments - %d appointments returned: company_id=%d, user_id=%d",
		len(result.Appointments), companyID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
