package pgdb

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/repository/pgdb/converter"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// UnifiedRepo — каноническая таблица товаров поверх PostgreSQL.
type UnifiedRepo struct {
	pool *pgxpool.Pool
	conv converter.CanonicalProductConverter
}

func NewUnifiedRepo(pool *pgxpool.Pool, conv converter.CanonicalProductConverter) *UnifiedRepo {
	return &UnifiedRepo{
		pool: pool,
		conv: conv,
	}
}

// Snapshot возвращает срез канонической таблицы перед слиянием:
// только поля, по которым определяются экономически значимые изменения.
func (u *UnifiedRepo) Snapshot(ctx context.Context) (map[string]usecase.UnifiedSnapshotRow, error) {
	query := `
		SELECT sku, source_type, price, shipping, product_link
		FROM products
	`

	rows, err := u.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	snapshot := make(map[string]usecase.UnifiedSnapshotRow)
	for rows.Next() {
		var row usecase.UnifiedSnapshotRow
		var sourceType string
		if err := rows.Scan(&row.SKU, &sourceType, &row.Price, &row.Shipping, &row.ProductLink); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		row.SourceType = domain.SourceType(sourceType)
		snapshot[row.SKU] = row
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return snapshot, nil
}

// UpsertProducts перезаписывает канонические записи чанками в транзакции
// из контекста. Записи не удаляются: слияние только добавляет и обновляет.
func (u *UnifiedRepo) UpsertProducts(ctx context.Context, products []domain.CanonicalProduct) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (
			sku, source_type, name, price, shipping, product_link,
			options, disclaimer, provenance, content_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sku)
		DO UPDATE SET
			source_type = EXCLUDED.source_type,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			shipping = EXCLUDED.shipping,
			product_link = EXCLUDED.product_link,
			options = EXCLUDED.options,
			disclaimer = EXCLUDED.disclaimer,
			provenance = EXCLUDED.provenance,
			content_hash = EXCLUDED.content_hash,
			updated_at = NOW()
	`

	upserted := 0
	for _, part := range chunk(products, upsertChunkSize) {
		batch := &pgx.Batch{}
		for i := range part {
			model := u.conv.ToModel(&part[i])
			batch.Queue(query,
				model.SKU, model.SourceType, model.Name, model.Price,
				model.Shipping, model.ProductLink, model.Options,
				model.Disclaimer, model.Provenance, model.ContentHash,
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

// GetProducts возвращает канонические записи запрошенных SKU одним запросом.
// Отсутствующие SKU в ответе не представлены.
func (u *UnifiedRepo) GetProducts(ctx context.Context, skus []string) ([]domain.CanonicalProduct, error) {
	query := `
		SELECT sku, source_type, name, price, shipping, product_link,
		       options, disclaimer, provenance, content_hash, updated_at
		FROM products
		WHERE sku = ANY($1)
	`

	rows, err := u.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.CanonicalProduct, 0, len(skus))
	for rows.Next() {
		var model converter.CanonicalProductModel
		err := rows.Scan(
			&model.SKU, &model.SourceType, &model.Name, &model.Price,
			&model.Shipping, &model.ProductLink, &model.Options,
			&model.Disclaimer, &model.Provenance, &model.ContentHash,
			&model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *u.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
