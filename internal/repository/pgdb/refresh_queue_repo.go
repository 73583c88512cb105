package pgdb

import (
	"context"
	"errors"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/repository/pgdb/converter"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// RefreshQueueRepo — очередь регенерации контента поверх PostgreSQL.
// На один SKU в таблице существует не более одной записи.
type RefreshQueueRepo struct {
	pool *pgxpool.Pool
	conv converter.RefreshItemConverter
}

func NewRefreshQueueRepo(pool *pgxpool.Pool, conv converter.RefreshItemConverter) *RefreshQueueRepo {
	return &RefreshQueueRepo{
		pool: pool,
		conv: conv,
	}
}

// Enqueue ставит кандидатов в очередь в транзакции из контекста.
// Повторная постановка живого SKU перезаписывает запись и возвращает её
// в PENDING с причиной последней постановки, не создавая дубликата.
func (r *RefreshQueueRepo) Enqueue(ctx context.Context, candidates []usecase.RefreshCandidate) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO refresh_queue (sku, status, reason, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sku)
		DO UPDATE SET
			status = $2,
			reason = EXCLUDED.reason,
			payload = EXCLUDED.payload,
			last_error = NULL,
			updated_at = NOW()
	`

	queued := 0
	for _, part := range chunk(candidates, upsertChunkSize) {
		batch := &pgx.Batch{}
		for _, candidate := range part {
			batch.Queue(query, candidate.SKU, domain.RefreshPending, candidate.Reason, candidate.Payload)
		}

		results := tx.SendBatch(ctx, batch)
		for range part {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return 0, e.Wrap(whereami.WhereAmI(), err)
			}
			queued += int(tag.RowsAffected())
		}
		if err := results.Close(); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return queued, nil
}

// GetItem возвращает запись очереди по SKU.
func (r *RefreshQueueRepo) GetItem(ctx context.Context, sku string) (*domain.RefreshItem, error) {
	query := `
		SELECT sku, status, reason, payload, retry_count, last_error, enqueued_at, updated_at
		FROM refresh_queue
		WHERE sku = $1
	`

	var model converter.RefreshItemModel
	err := r.pool.QueryRow(ctx, query, sku).Scan(
		&model.SKU, &model.Status, &model.Reason, &model.Payload,
		&model.RetryCount, &model.LastError, &model.EnqueuedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrRefreshItemNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

// ListByStatus возвращает записи в заданном статусе в порядке постановки.
func (r *RefreshQueueRepo) ListByStatus(ctx context.Context, status domain.RefreshStatus, limit int) ([]domain.RefreshItem, error) {
	query := `
		SELECT sku, status, reason, payload, retry_count, last_error, enqueued_at, updated_at
		FROM refresh_queue
		WHERE status = $1
		ORDER BY enqueued_at
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.RefreshItem, 0, limit)
	for rows.Next() {
		var model converter.RefreshItemModel
		err := rows.Scan(
			&model.SKU, &model.Status, &model.Reason, &model.Payload,
			&model.RetryCount, &model.LastError, &model.EnqueuedAt, &model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *r.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// SetStatus переводит запись в next в транзакции из контекста. Текущий статус
// читается под блокировкой строки, переход проверяется на допустимость,
// retry_count растёт только при явном запросе (переводе в FAILED).
func (r *RefreshQueueRepo) SetStatus(ctx context.Context, sku string, next domain.RefreshStatus, lastError *string, incrementRetry bool) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	var current domain.RefreshStatus
	err = tx.QueryRow(ctx, `SELECT status FROM refresh_queue WHERE sku = $1 FOR UPDATE`, sku).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e.Wrap(whereami.WhereAmI(), e.ErrRefreshItemNotFound)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := domain.ValidateRefreshTransition(current, next); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE refresh_queue
		SET status = $2,
		    last_error = $3,
		    retry_count = retry_count + $4,
		    updated_at = NOW()
		WHERE sku = $1
	`

	increment := 0
	if incrementRetry {
		increment = 1
	}

	if _, err := tx.Exec(ctx, query, sku, next, lastError, increment); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
