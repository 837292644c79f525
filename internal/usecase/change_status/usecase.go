package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case смены статуса записи
// Переход проверяется матрицей статусов: завершённые и отменённые записи
// терминальны. Оплата связана со статусом завершения: amount > 0 влечёт
// isPaid = true, очищенная сумма - isPaid = false. Уведомление клиенту
// отправляется после фиксации перехода; его сбой не откатывает смену статуса.
type UseCase struct {
	appointmentRepo AppointmentRepository
	companyClient   CompanyServiceClient
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	companyClient CompanyServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		companyClient:   companyClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeStatus: id=%d, newStatus=%s", req.AppointmentID, req.NewStatus)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Appointment
	var suggestedAmount *float64

	// 2. Чтение и переход в одной serializable-транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3. Переход должен быть разрешён матрицей статусов
		if !domain.CanTransition(appt.Status, req.NewStatus) {
			uc.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for id=%d",
				appt.Status, req.NewStatus, appt.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, req.NewStatus)
		}

		switch req.NewStatus {
		case domain.StatusCancelled:
			updated, err = uc.appointmentRepo.Cancel(txCtx, appt.ID, req.CancellationReason)

		case domain.StatusCompleted:
			// Оплата связана со статусом: amount > 0 => isPaid, nil => не оплачено
			amount := req.Amount
			isPaid := amount != nil && *amount > 0
			if amount != nil && *amount == 0 {
				amount = nil
			}

			// Подсказка цены из прайса услуги при завершении без суммы;
			// в запись не сохраняется
			if amount == nil && appt.ServiceID != nil {
				price, priceErr := uc.companyClient.GetServicePrice(txCtx, appt.CompanyID, *appt.ServiceID)
				if priceErr != nil {
					uc.logger.Warn("ChangeStatus: failed to get service price for id=%d: %v",
						*appt.ServiceID, priceErr)
				} else {
					suggestedAmount = price
				}
			}

			updated, err = uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, req.NewStatus, amount, isPaid, req.PaymentMethod)

		default:
			updated, err = uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, req.NewStatus, appt.Amount, appt.IsPaid, appt.PaymentMethod)
		}

		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrAppointmentNotFound),
			errors.Is(txErr, ErrInvalidTransition):
			return nil, txErr
		case errors.Is(txErr, ErrInternal):
			uc.logger.Error("ChangeStatus: transaction failed: %v", txErr)
			return nil, txErr
		default:
			uc.logger.Error("ChangeStatus: transaction failed: %v", txErr)
			return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
		}
	}

	// 4. Уведомление клиенту после фиксации перехода
	// Деградация NotifyService не откатывает смену статуса: наружу уходит sent=false
	notificationSent := false
	if updated.ClientContactID != nil {
		sent, err := uc.notifyClient.SendWithGracefulDegradation(ctx, &notifyservice.StatusNotification{
			AppointmentID:   updated.ID,
			NewStatus:       string(updated.Status),
			ClientContactID: *updated.ClientContactID,
		})
		if err != nil {
			uc.logger.Warn("ChangeStatus: notification for id=%d not delivered: %v", updated.ID, err)
		}
		notificationSent = sent
	}

	uc.logger.Info("ChangeStatus: appointment id=%d moved to status %s, notified=%t",
		updated.ID, updated.Status, notificationSent)

	return &Response{
		Appointment:      updated,
		SuggestedAmount:  suggestedAmount,
		NotificationSent: notificationSent,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if !req.NewStatus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.NewStatus)
	}

	if req.Amount != nil && *req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}

	// Сумма и способ оплаты имеют смысл только при завершении
	if req.NewStatus != domain.StatusCompleted && (req.Amount != nil || req.PaymentMethod != nil) {
		return fmt.Errorf("%w: amount and payment method are only allowed when completing", ErrInvalidInput)
	}

	// Причина отмены имеет смысл только при отмене
	if req.NewStatus != domain.StatusCancelled && req.CancellationReason != nil {
		return fmt.Errorf("%w: cancellation reason is only allowed when cancelling", ErrInvalidInput)
	}

	return nil
}
