package domain

import (
	"fmt"
	"time"

	"github.com/content-os/commerce-sync/pkg/e"
)

// RefreshStatus — статус элемента очереди регенерации контента.
type RefreshStatus string

const (
	RefreshPending    RefreshStatus = "PENDING"
	RefreshProcessing RefreshStatus = "PROCESSING"
	RefreshDone       RefreshStatus = "DONE"
	RefreshFailed     RefreshStatus = "FAILED"
)

// refreshTransitions — допустимые переходы статусов очереди.
var refreshTransitions = map[RefreshStatus]map[RefreshStatus]struct{}{
	RefreshPending:    {RefreshProcessing: {}, RefreshFailed: {}},
	RefreshProcessing: {RefreshDone: {}, RefreshFailed: {}, RefreshPending: {}},
	RefreshFailed:     {RefreshPending: {}, RefreshProcessing: {}},
	RefreshDone:       {RefreshPending: {}},
}

// ValidateRefreshTransition проверяет допустимость перехода current -> next.
// Недопустимый переход возвращается ошибкой с указанием пары статусов
// и никогда не приводится к другому целевому статусу.
func ValidateRefreshTransition(current, next RefreshStatus) error {
	if _, ok := refreshTransitions[current][next]; !ok {
		return fmt.Errorf("%w: %s -> %s", e.ErrIllegalRefreshTransition, current, next)
	}
	return nil
}

// RefreshItem — элемент очереди регенерации. На один SKU существует не более
// одной живой записи: повторная постановка перезаписывает её, а не добавляет новую.
type RefreshItem struct {
	SKU        string
	Status     RefreshStatus
	Reason     string
	Payload    []byte
	RetryCount int
	LastError  *string
	EnqueuedAt time.Time
	UpdatedAt  time.Time
}
