package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkmsk/DCS-SchedulingService/internal/api/handlers"
	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate      = "отсутствует обязательный параметр date"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidResource  = "некорректный ID ресурса"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgUnknownResource  = "указанный ресурс не найден в компании"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/available-slots
//
// Query параметры:
//   - date (обязательный): дата в формате YYYY-MM-DD
//   - durationMinutes: длительность записи; 0 или отсутствие = взять из услуги
//   - serviceId: ID услуги (для длительности и уровня конфигурации)
//   - masterId, postId: ограничение по конкретному ресурсу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date parameter: company_id=%d", companyID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationMinutes := 0
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /available-slots - Invalid duration %q: %v", durationStr, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	serviceID, err := parseOptionalID(query.Get("serviceId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}
	masterID, err := parseOptionalID(query.Get("masterId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}
	postID, err := parseOptionalID(query.Get("postId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CompanyID:       companyID,
		Date:            date,
		DurationMinutes: durationMinutes,
		MasterID:        masterID,
		PostID:          postID,
		ServiceID:       serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /available-slots - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrUnknownResource):
			h.logger.Warn("GET /available-slots - Unknown resource: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgUnknownResource)

		case errors.Is(err, getAvailableSlots.ErrInvalidDuration),
			errors.Is(err, getAvailableSlots.ErrInvalidDate),
			errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid request: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /available-slots - Failed: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots returned: company_id=%d, date=%s",
		len(result.Slots), companyID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseOptionalID парсит опциональный ID из query параметра
func parseOptionalID(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
