package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// PartnerUseCase реализует импорт партнёрского (аффилиатного) фида
// с политикой fail-closed: любое нарушение отклоняет весь батч.
type PartnerUseCase struct {
	feed          FeedInfra
	partnerRepo   PartnerRepository
	dbPool        transaction.Transactional
	allowedSource string
	logger        logger.Logger
}

func NewPartnerUC(
	feed FeedInfra,
	partnerRepo PartnerRepository,
	dbPool transaction.Transactional,
	allowedSource string,
	logger logger.Logger,
) *PartnerUseCase {
	return &PartnerUseCase{
		feed:          feed,
		partnerRepo:   partnerRepo,
		dbPool:        dbPool,
		allowedSource: allowedSource,
		logger:        logger,
	}
}

// ImportFeed загружает фид, нормализует строки и записывает их одной
// транзакцией. Батч с нарушениями отклоняется целиком без частичной записи.
func (p *PartnerUseCase) ImportFeed(ctx context.Context) (*ImportFeedRes, error) {
	const op = "PartnerUseCase.ImportFeed"

	raw, err := p.feed.Load(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(raw) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyFeed)
	}

	products := normalizeFeedRows(raw)

	// Политика источников проверяется до любой записи
	violations := ValidatePartnerRows(products, p.allowedSource)
	if len(violations) > 0 {
		p.logger.Warnf(
			"Partner batch rejected. rows: %d, violations: %d, error: %v",
			len(products), len(violations), e.Wrap(op, e.ErrPartnerBatchRejected),
		)

		return &ImportFeedRes{
			Status:    StatusReject,
			Violation: violations,
		}, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	upserted, err := p.partnerRepo.UpsertProducts(ctx, products)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("Partner feed imported. rows: %d, upserted: %d", len(products), upserted)

	return &ImportFeedRes{
		Status:   StatusPass,
		Upserted: upserted,
	}, nil
}

// Кандидаты имён колонок фида: экспорт из таблиц и JSON-выгрузки
// используют разные заголовки для одних и тех же атрибутов.
var partnerFieldCandidates = map[string][]string{
	"id":           {"partner_product_id", "id", "sku"},
	"title":        {"title", "name"},
	"link":         {"affiliate_link", "link"},
	"category":     {"category"},
	"keywords":     {"keywords"},
	"content_type": {"content_type"},
	"source":       {"source"},
	"usage_mode":   {"usage_mode"},
}

// normalizeFeedRows приводит сырые строки фида к доменной модели.
// Для каждого атрибута берётся первое непустое значение из кандидатов.
func normalizeFeedRows(raw []map[string]any) []domain.PartnerProduct {
	products := make([]domain.PartnerProduct, 0, len(raw))

	for _, row := range raw {
		payload, _ := json.Marshal(row)

		products = append(products, domain.PartnerProduct{
			PartnerProductID: firstNonEmpty(row, partnerFieldCandidates["id"]),
			Source:           firstNonEmpty(row, partnerFieldCandidates["source"]),
			Title:            firstNonEmpty(row, partnerFieldCandidates["title"]),
			Category:         firstNonEmpty(row, partnerFieldCandidates["category"]),
			Keywords:         firstNonEmpty(row, partnerFieldCandidates["keywords"]),
			ContentType:      firstNonEmpty(row, partnerFieldCandidates["content_type"]),
			AffiliateLink:    firstNonEmpty(row, partnerFieldCandidates["link"]),
			UsageMode:        firstNonEmpty(row, partnerFieldCandidates["usage_mode"]),
			RawPayload:       payload,
		})
	}

	return products
}

// firstNonEmpty возвращает первое непустое значение строки по списку ключей.
func firstNonEmpty(row map[string]any, keys []string) string {
	for _, key := range keys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}

		str := strings.TrimSpace(fmt.Sprint(value))
		if str != "" {
			return str
		}
	}

	return ""
}
