package usecase

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// defaultPendingLimit — размер порции очереди, отдаваемой внешнему конвейеру.
const defaultPendingLimit = 100

// RefreshQueueUseCase — операции внешнего контентного конвейера над очередью
// регенерации: выборка ожидающих SKU и отчёт о результатах обработки.
type RefreshQueueUseCase struct {
	refreshRepo RefreshQueueRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewRefreshQueueUC(
	refreshRepo RefreshQueueRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *RefreshQueueUseCase {
	return &RefreshQueueUseCase{
		refreshRepo: refreshRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// ListPending возвращает порцию элементов в статусе PENDING в порядке постановки.
func (r *RefreshQueueUseCase) ListPending(ctx context.Context) ([]domain.RefreshItem, error) {
	const op = "RefreshQueueUseCase.ListPending"

	items, err := r.refreshRepo.ListByStatus(ctx, domain.RefreshPending, defaultPendingLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return items, nil
}

// MarkProcessing переводит элемент в PROCESSING.
func (r *RefreshQueueUseCase) MarkProcessing(ctx context.Context, sku string) error {
	const op = "RefreshQueueUseCase.MarkProcessing"

	if err := r.setStatus(ctx, sku, domain.RefreshProcessing, nil, false); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// MarkDone переводит элемент в DONE.
func (r *RefreshQueueUseCase) MarkDone(ctx context.Context, sku string) error {
	const op = "RefreshQueueUseCase.MarkDone"

	if err := r.setStatus(ctx, sku, domain.RefreshDone, nil, false); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// MarkFailed переводит элемент в FAILED с текстом ошибки.
// Счётчик попыток увеличивается только здесь.
func (r *RefreshQueueUseCase) MarkFailed(ctx context.Context, sku string, reason string) error {
	const op = "RefreshQueueUseCase.MarkFailed"

	if err := r.setStatus(ctx, sku, domain.RefreshFailed, &reason, true); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Requeue возвращает элемент в PENDING для повторной обработки.
func (r *RefreshQueueUseCase) Requeue(ctx context.Context, sku string) error {
	const op = "RefreshQueueUseCase.Requeue"

	if err := r.setStatus(ctx, sku, domain.RefreshPending, nil, false); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// setStatus выполняет переход статуса одной транзакцией: репозиторий блокирует
// строку, проверяет допустимость перехода и пишет новое состояние.
func (r *RefreshQueueUseCase) setStatus(
	ctx context.Context,
	sku string,
	next domain.RefreshStatus,
	lastError *string,
	incrementRetry bool,
) error {
	if sku == "" {
		return e.ErrMissingSKU
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, r.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	err = r.refreshRepo.SetStatus(ctx, sku, next, lastError, incrementRetry)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
