package update_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	"github.com/dkmsk/DCS-SchedulingService/internal/api/middleware"
	configService "github.com/dkmsk/DCS-SchedulingService/internal/service/config"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры конфигурации"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/companies/{companyId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /companies/{id}/schedule-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /companies/{id}/schedule-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(companyID, userID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrCompanyNotFound):
			h.logger.Warn("PUT /companies/{id}/schedule-config - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, configService.ErrServiceNotFound):
			h.logger.Warn("PUT /companies/{id}/schedule-config - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /companies/{id}/schedule-config - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /companies/{id}/schedule-config - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /companies/{id}/schedule-config - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companies/{id}/schedule-config - Config upserted: company_id=%d, config_id=%d",
		companyID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
