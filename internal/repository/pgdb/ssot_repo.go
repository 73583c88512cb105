package pgdb

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/repository/pgdb/converter"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SSOTRepo — таблица истины собственного магазина поверх PostgreSQL.
type SSOTRepo struct {
	pool *pgxpool.Pool
	conv converter.StoreProductConverter
}

func NewSSOTRepo(pool *pgxpool.Pool, conv converter.StoreProductConverter) *SSOTRepo {
	return &SSOTRepo{
		pool: pool,
		conv: conv,
	}
}

// GetHashes возвращает сохранённые хэши запрошенных SKU одним запросом.
func (s *SSOTRepo) GetHashes(ctx context.Context, skus []string) (map[string]string, error) {
	query := `
		SELECT sku, content_hash
		FROM products_ssot
		WHERE sku = ANY($1)
	`

	rows, err := s.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	hashes := make(map[string]string, len(skus))
	for rows.Next() {
		var sku, hash string
		if err := rows.Scan(&sku, &hash); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		hashes[sku] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return hashes, nil
}

// UpsertRows идемпотентно записывает строки чанками в транзакции из контекста:
// по ключу sku перезаписываются все изменяемые поля, updated_at обновляется.
// Повтор с теми же данными меняет только временные метки, не число строк.
func (s *SSOTRepo) UpsertRows(ctx context.Context, rows []domain.StoreProductRow) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products_ssot (
			sku, product_id, name, price, currency, status,
			shipping, product_link, content_hash, raw_payload,
			parse_status, parse_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (sku)
		DO UPDATE SET
			product_id = EXCLUDED.product_id,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			shipping = EXCLUDED.shipping,
			product_link = EXCLUDED.product_link,
			content_hash = EXCLUDED.content_hash,
			raw_payload = EXCLUDED.raw_payload,
			parse_status = EXCLUDED.parse_status,
			parse_error = EXCLUDED.parse_error,
			updated_at = NOW()
	`

	upserted := 0
	for _, part := range chunk(rows, upsertChunkSize) {
		batch := &pgx.Batch{}
		for i := range part {
			model := s.conv.ToModel(&part[i])
			batch.Queue(query,
				model.SKU, model.ProductID, model.Name, model.Price,
				model.Currency, model.Status, model.Shipping, model.ProductLink,
				model.ContentHash, model.RawPayload, model.ParseStatus, model.ParseError,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range part {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return 0, e.Wrap(whereami.WhereAmI(), err)
			}
			upserted += int(tag.RowsAffected())
		}
		if err := results.Close(); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return upserted, nil
}

// ListRows возвращает все строки таблицы истины.
func (s *SSOTRepo) ListRows(ctx context.Context) ([]domain.StoreProductRow, error) {
	query := `
		SELECT sku, product_id, name, price, currency, status,
		       shipping, product_link, content_hash, raw_payload,
		       parse_status, parse_error, updated_at
		FROM products_ssot
		ORDER BY sku
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.StoreProductRow, 0)
	for rows.Next() {
		var model converter.StoreProductModel
		err := rows.Scan(
			&model.SKU, &model.ProductID, &model.Name, &model.Price,
			&model.Currency, &model.Status, &model.Shipping, &model.ProductLink,
			&model.ContentHash, &model.RawPayload, &model.ParseStatus,
			&model.ParseError, &model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *s.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
