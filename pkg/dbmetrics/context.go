package dbmetrics

import "context"

type contextKey struct{}

var txContextKey = contextKey{}

// WithExecutor кладет транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// GetExecutor возвращает транзакцию из контекста или fallback, если транзакции нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey).(TxExecutor)
	return ok
}
