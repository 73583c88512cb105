package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// MergeUseCase сливает два трека (собственный магазин и аффилиатный каталог)
// в единую каноническую таблицу и отбирает кандидатов на регенерацию контента.
type MergeUseCase struct {
	ssotRepo      SSOTRepository
	partnerRepo   PartnerRepository
	unifiedRepo   UnifiedRepository
	cacheRepo     CacheRepository
	dbPool        transaction.Transactional
	allowedSource string
	logger        logger.Logger
}

func NewMergeUC(
	ssotRepo SSOTRepository,
	partnerRepo PartnerRepository,
	unifiedRepo UnifiedRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	allowedSource string,
	logger logger.Logger,
) *MergeUseCase {
	return &MergeUseCase{
		ssotRepo:      ssotRepo,
		partnerRepo:   partnerRepo,
		unifiedRepo:   unifiedRepo,
		cacheRepo:     cacheRepo,
		dbPool:        dbPool,
		allowedSource: allowedSource,
		logger:        logger,
	}
}

// Merge перестраивает каноническую таблицу из обоих треков.
// Кандидаты на регенерацию берутся только из экономически значимых изменений
// собственного трека (цена, доставка, ссылка): аффилиатные записи хранят
// nil-цену с обязательной оговоркой, поэтому их изменения регенерацию не вызывают.
func (m *MergeUseCase) Merge(ctx context.Context) (*MergeRes, []RefreshCandidate, error) {
	const op = "MergeUseCase.Merge"

	// Срез канонической таблицы до записи — база для диффа
	snapshot, err := m.unifiedRepo.Snapshot(ctx)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	storeRows, err := m.ssotRepo.ListRows(ctx)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	partnerRows, err := m.partnerRepo.ListProducts(ctx, m.allowedSource)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	products, candidates := m.buildCanonical(storeRows, partnerRows, snapshot)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	upserted, err := m.unifiedRepo.UpsertProducts(ctx, products)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	// Инвалидация кэша изменившихся и новых записей
	if stale := m.staleSKUs(products, snapshot); len(stale) > 0 {
		if err := m.cacheRepo.DeleteProducts(ctx, stale); err != nil {
			m.logger.Warnf("Failed to invalidate unified cache: %v", e.Wrap(op, err))
		}
	}

	skus := make([]string, 0, len(candidates))
	for _, c := range candidates {
		skus = append(skus, c.SKU)
	}

	return &MergeRes{
		Upserted:     upserted,
		RefreshCount: len(candidates),
		RefreshSKUs:  skus,
	}, candidates, nil
}

// buildCanonical собирает канонические записи из двух треков.
// При конфликте SKU собственный магазин имеет приоритет над аффилиатом.
func (m *MergeUseCase) buildCanonical(
	storeRows []domain.StoreProductRow,
	partnerRows []domain.PartnerProduct,
	snapshot map[string]UnifiedSnapshotRow,
) ([]domain.CanonicalProduct, []RefreshCandidate) {
	products := make([]domain.CanonicalProduct, 0, len(storeRows)+len(partnerRows))
	candidates := make([]RefreshCandidate, 0)
	owned := make(map[string]struct{}, len(storeRows))

	for _, row := range storeRows {
		if row.ParseStatus == domain.ParseFail {
			// Деградированные строки в каноническую таблицу не попадают
			m.logger.Debugf("Skipping degraded row in merge. sku: %s, parse_error: %s", row.SKU, row.ParseError)
			continue
		}

		owned[row.SKU] = struct{}{}
		products = append(products, storeRowToCanonical(row))

		if prev, ok := snapshot[row.SKU]; ok && prev.SourceType == domain.SourceOwnedStore {
			if diff := ownedFieldsDiff(prev, row); diff != "" {
				payload, _ := json.Marshal(map[string]string{
					"sku":     row.SKU,
					"reason":  ReasonFieldsChanged,
					"changed": diff,
				})
				candidates = append(candidates, NewRefreshCandidate(row.SKU, ReasonFieldsChanged, payload))
			}
		}
	}

	for _, partner := range partnerRows {
		if _, ok := owned[partner.PartnerProductID]; ok {
			continue
		}
		products = append(products, partnerProductToCanonical(partner))
	}

	return products, candidates
}

// staleSKUs — SKU, чьи кэшированные записи устарели после слияния:
// новые записи плюс записи с изменившимися каноническими полями любого трека.
// Аффилиатный трек кандидатов на регенерацию не порождает, но его кэш
// инвалидируется наравне с собственным.
func (m *MergeUseCase) staleSKUs(products []domain.CanonicalProduct, snapshot map[string]UnifiedSnapshotRow) []string {
	stale := make([]string, 0)
	for _, p := range products {
		prev, ok := snapshot[p.SKU]
		if !ok || snapshotChanged(prev, p) {
			stale = append(stale, p.SKU)
		}
	}
	return stale
}

// snapshotChanged сравнивает запись с прежним срезом по хранимым в нём полям.
func snapshotChanged(prev UnifiedSnapshotRow, p domain.CanonicalProduct) bool {
	if prev.SourceType != p.SourceType {
		return true
	}
	if (prev.Price == nil) != (p.Price == nil) {
		return true
	}
	if prev.Price != nil && p.Price != nil && *prev.Price != *p.Price {
		return true
	}

	return prev.Shipping != p.Shipping || prev.ProductLink != p.ProductLink
}

// ownedFieldsDiff возвращает список изменившихся экономически значимых полей
// либо пустую строку. Изменения имени и опций регенерацию не вызывают.
func ownedFieldsDiff(prev UnifiedSnapshotRow, row domain.StoreProductRow) string {
	var changed []string

	if prev.Price == nil || *prev.Price != row.Price {
		changed = append(changed, "price")
	}
	if prev.Shipping != row.Shipping {
		changed = append(changed, "shipping")
	}
	if prev.ProductLink != row.ProductLink {
		changed = append(changed, "product_link")
	}

	return strings.Join(changed, ",")
}

func storeRowToCanonical(row domain.StoreProductRow) domain.CanonicalProduct {
	price := row.Price
	provenance, _ := json.Marshal(map[string]string{
		"product_id":   row.ProductID,
		"currency":     row.Currency,
		"status":       row.Status,
		"parse_status": string(row.ParseStatus),
	})

	return domain.CanonicalProduct{
		SKU:         row.SKU,
		SourceType:  domain.SourceOwnedStore,
		Name:        row.Name,
		Price:       &price,
		Shipping:    row.Shipping,
		ProductLink: row.ProductLink,
		Provenance:  provenance,
		ContentHash: row.ContentHash,
	}
}

func partnerProductToCanonical(partner domain.PartnerProduct) domain.CanonicalProduct {
	provenance, _ := json.Marshal(map[string]string{
		"partner_product_id": partner.PartnerProductID,
		"source":             partner.Source,
		"category":           partner.Category,
		"content_type":       partner.ContentType,
	})

	return domain.CanonicalProduct{
		SKU:         partner.PartnerProductID,
		SourceType:  domain.SourceAffiliate,
		Name:        partner.Title,
		Price:       nil, // Цена аффилиата волатильна и не хранится
		ProductLink: partner.AffiliateLink,
		Options:     partner.Keywords,
		Disclaimer:  domain.AffiliatePriceDisclaimer,
		Provenance:  provenance,
	}
}
