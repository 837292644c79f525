package scheduleconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("scheduleconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduleconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduleconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("scheduleconfig.repository: failed to scan row")

	// ErrDuplicateConfig возвращается при попытке создать дубликат конфигурации
	ErrDuplicateConfig = errors.New("scheduleconfig.repository: duplicate config for company and service")
)
