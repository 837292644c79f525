package companyservice

// Company модель компании из CompanyService
type Company struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	ManagerIDs   []int64      `json:"manager_ids"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// WeekSchedule расписание работы компании по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule рабочие часы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "18:00"
}

// Resource модель ресурса (пост или мастер) из реестра компании
type Resource struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "post" | "master"
	Active bool   `json:"active"`
}

// resourcesPage одна страница ответа реестра ресурсов
// Реестр отдаёт ресурсы постранично; клиент обязан объединить все страницы.
type resourcesPage struct {
	Items      []Resource `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// Service модель услуги из каталога компании
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"` // nil = прайс не задан
}

// ErrorResponse модель ошибки от CompanyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
