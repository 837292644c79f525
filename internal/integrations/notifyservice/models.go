package notifyservice

// StatusNotification запрос на уведомление клиента о смене статуса записи
type StatusNotification struct {
	AppointmentID   int64  `json:"appointment_id"`
	NewStatus       string `json:"new_status"`
	ClientContactID string `json:"client_contact_id"`
}

// notificationResult ответ сервиса уведомлений
type notificationResult struct {
	Sent bool `json:"sent"`
}
