package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	"github.com/dkmsk/DCS-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
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

// Handle GET /api/v1/companies/{companyId}/schedule-config
//
// Опциональный query параметр serviceId выбирает уровень конфигурации;
// без него возвращается общая конфигурация компании. Если в БД ничего нет,
// возвращаются значения по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/schedule-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var serviceID *int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		id, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/schedule-config - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &id
	}

	result, err := h.service.GetWithHierarchy(r.Context(), &models.GetConfigRequest{
		CompanyID: companyID,
		ServiceID: serviceID,
	})
	if err != nil {
		h.logger.Error("GET /companies/{id}/schedule-config - Failed: company_id=%d, error=%v", companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id}/schedule-config - Config retrieved: company_id=%d", companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
