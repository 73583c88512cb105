package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Ошибки авторизации к Commerce API
	ErrAuth         = fmt.Errorf("commerce auth failed")
	ErrTokenMissing = fmt.Errorf("token response missing access_token")

	// Ошибки шлюза исходящих запросов
	ErrRetryBudgetExhausted = fmt.Errorf("retry budget exhausted")

	// Ошибки очереди регенерации контента
	ErrIllegalRefreshTransition = fmt.Errorf("illegal refresh queue transition")
	ErrRefreshItemNotFound      = fmt.Errorf("refresh queue item not found")

	// Ошибки партнёрского фида
	ErrPartnerBatchRejected = fmt.Errorf("partner batch rejected by source policy")
	ErrEmptyFeed            = fmt.Errorf("partner feed is empty")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMissingSKU       = fmt.Errorf("sku is required")
	ErrNoProducts       = fmt.Errorf("no products requested")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
