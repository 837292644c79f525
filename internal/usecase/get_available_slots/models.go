package get_available_slots

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Request модель запроса на расчёт открытых слотов
type Request struct {
	CompanyID       int64     // ID компании
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes int       // Длительность будущей записи; 0 = взять из услуги
	MasterID        *int64    // Ограничение по мастеру (опционально)
	PostID          *int64    // Ограничение по посту (опционально)
	ServiceID       *int64    // Услуга (опционально; источник длительности и конфигурации)
}

// Response модель ответа со списком открытых слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	CompanyID       int64     // ID компании
	DurationMinutes int       // Фактическая длительность, по которой считалась доступность
	TotalPosts      int       // Активных постов в снапшоте реестра
	Slots           []Slot    // Список открытых слотов (упорядочен по времени начала)
}

// Slot модель открытого временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность в минутах
	AvailableCount  int              // Количество свободных постов на интервале слота
	TotalPosts      int              // Общее количество активных постов
}
