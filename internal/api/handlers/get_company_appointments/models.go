package get_company_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/service/appointments/models"
)

// parseQuery собирает модель запроса сервиса из query параметров
//
// Поддерживаемые параметры:
//   - startDate, endDate: период в формате YYYY-MM-DD (одна дата = записи дня)
//   - masterId, postId: фильтр по ресурсу
//   - status: фильтр по статусу
//   - includeInactive: включить завершённые и отменённые
func parseQuery(query url.Values, companyID, userID int64) (*models.GetCompanyAppointmentsRequest, error) {
	req := &models.GetCompanyAppointmentsRequest{
		UserID:    userID,
		CompanyID: companyID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if masterIDStr := query.Get("masterId"); masterIDStr != "" {
		masterID, err := strconv.ParseInt(masterIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MasterID = &masterID
	}

	if postIDStr := query.Get("postId"); postIDStr != "" {
		postID, err := strconv.ParseInt(postIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PostID = &postID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
