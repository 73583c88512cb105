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

// PartnerRepo — партнёрский (аффилиатный) каталог поверх PostgreSQL.
type PartnerRepo struct {
	pool *pgxpool.Pool
	conv converter.PartnerProductConverter
}

func NewPartnerRepo(pool *pgxpool.Pool, conv converter.PartnerProductConverter) *PartnerRepo {
	return &PartnerRepo{
		pool: pool,
		conv: conv,
	}
}

// UpsertProducts записывает партнёрские строки чанками в транзакции из
// контекста по ключу partner_product_id. Валидация батча выполняется
// до записи, сюда попадают только прошедшие проверку строки.
func (p *PartnerRepo) UpsertProducts(ctx context.Context, products []domain.PartnerProduct) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO partner_products (
			partner_product_id, source, title, category, keywords,
			content_type, affiliate_link, usage_mode, raw_payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (partner_product_id)
		DO UPDATE SET
			source = EXCLUDED.source,
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			keywords = EXCLUDED.keywords,
			content_type = EXCLUDED.content_type,
			affiliate_link = EXCLUDED.affiliate_link,
			usage_mode = EXCLUDED.usage_mode,
			raw_payload = EXCLUDED.raw_payload,
			updated_at = NOW()
	`

	upserted := 0
	for _, part := range chunk(products, upsertChunkSize) {
		batch := &pgx.Batch{}
		for i := range part {
			model := p.conv.ToModel(&part[i])
			batch.Queue(query,
				model.PartnerProductID, model.Source, model.Title,
				model.Category, model.Keywords, model.ContentType,
				model.AffiliateLink, model.UsageMode, model.RawPayload,
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

// ListProducts возвращает партнёрские строки заданного источника.
func (p *PartnerRepo) ListProducts(ctx context.Context, source string) ([]domain.PartnerProduct, error) {
	query := `
		SELECT partner_product_id, source, title, category, keywords,
		       content_type, affiliate_link, usage_mode, raw_payload, updated_at
		FROM partner_products
		WHERE source = $1
		ORDER BY partner_product_id
	`

	rows, err := p.pool.Query(ctx, query, source)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.PartnerProduct, 0)
	for rows.Next() {
		var model converter.PartnerProductModel
		err := rows.Scan(
			&model.PartnerProductID, &model.Source, &model.Title,
			&model.Category, &model.Keywords, &model.ContentType,
			&model.AffiliateLink, &model.UsageMode, &model.RawPayload,
			&model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
