package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncFixture(commerce *mockCommerce) (*SyncUseCase, *mockSSOTRepo, *mockRefreshRepo, *mockUnifiedRepo, *mockOutboxRepo, *mockArchive) {
	ssotRepo := newMockSSOTRepo()
	partnerRepo := newMockPartnerRepo()
	unifiedRepo := newMockUnifiedRepo()
	refreshRepo := newMockRefreshRepo()
	outboxRepo := &mockOutboxRepo{}
	archive := &mockArchive{}
	log := nopLogger{}

	merger := NewMergeUC(ssotRepo, partnerRepo, unifiedRepo, &mockCacheRepo{}, fakeDB{}, domain.AllowedPartnerSource, log)
	uc := NewSyncUC(commerce, mockNormalizer{}, ssotRepo, refreshRepo, outboxRepo, archive, merger, fakeDB{}, log)

	return uc, ssotRepo, refreshRepo, unifiedRepo, outboxRepo, archive
}

func TestSyncStore_EndToEnd(t *testing.T) {
	commerce := &mockCommerce{
		IDs: []string{"1001", "1002"},
		Details: []RawDetail{
			NewRawDetail("1001", detailPayload("SKU-1", "Kettle", 39.9)),
			NewRawDetail("1002", detailPayload("SKU-2", "Toaster", 25)),
		},
	}
	uc, _, refreshRepo, unifiedRepo, outboxRepo, archive := newSyncFixture(commerce)

	// Первый запуск: оба товара новые
	res, err := uc.SyncStore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 2, res.Upserted)
	assert.Equal(t, 2, res.Queued)
	assert.Equal(t, 0, res.Errors)
	require.NotNil(t, res.Merge)
	assert.Equal(t, 2, res.Merge.Upserted)

	item, err := refreshRepo.GetItem(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshPending, item.Status)
	assert.Equal(t, ReasonNewProduct, item.Reason)

	// Каноническая таблица заполнена собственным треком
	products, err := unifiedRepo.GetProducts(context.Background(), []string{"SKU-1", "SKU-2"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, domain.SourceOwnedStore, products[0].SourceType)
	require.NotNil(t, products[0].Price)

	assert.Len(t, outboxRepo.events, 2)
	assert.Equal(t, 1, archive.runs)

	// Повторный запуск: изменилась цена одного товара
	commerce.Details = []RawDetail{
		NewRawDetail("1001", detailPayload("SKU-1", "Kettle", 44.9)),
		NewRawDetail("1002", detailPayload("SKU-2", "Toaster", 25)),
	}

	res, err = uc.SyncStore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 2, res.Upserted)
	assert.Equal(t, 1, res.Queued, "без изменений остаётся только изменившийся товар")

	item, err = refreshRepo.GetItem(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, ReasonProductChanged, item.Reason)
}

func TestSyncStore_PartialFailureIsolation(t *testing.T) {
	// 10 товаров, одна деталь не загрузилась
	ids := make([]string, 0, 10)
	details := make([]RawDetail, 0, 9)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		ids = append(ids, id)
		if i == 5 {
			continue
		}
		details = append(details, NewRawDetail(id, detailPayload("SKU-"+id, "Item "+id, 10)))
	}

	commerce := &mockCommerce{IDs: ids, Details: details, DetailErrs: 1}
	uc, _, _, _, _, _ := newSyncFixture(commerce)

	res, err := uc.SyncStore(context.Background())
	require.NoError(t, err, "частичный сбой не выходит из SyncStore ошибкой")

	assert.Equal(t, 10, res.Fetched)
	assert.Equal(t, 9, res.Upserted)
	assert.Equal(t, 1, res.Errors)
}

func TestSyncStore_ListFetchFatal(t *testing.T) {
	commerce := &mockCommerce{FetchIDErr: errors.New("upstream down")}
	uc, _, _, _, _, _ := newSyncFixture(commerce)

	_, err := uc.SyncStore(context.Background())
	require.Error(t, err)
}

func TestSyncStore_ParseFailDegradesNotDrops(t *testing.T) {
	commerce := &mockCommerce{
		IDs: []string{"1001"},
		Details: []RawDetail{
			NewRawDetail("1001", []byte("not json at all")),
		},
	}
	uc, ssotRepo, _, unifiedRepo, _, _ := newSyncFixture(commerce)

	res, err := uc.SyncStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upserted)

	// Деградированная строка хранится в таблице истины с сырым payload
	row, ok := ssotRepo.rows["1001"]
	require.True(t, ok)
	assert.Equal(t, domain.ParseFail, row.ParseStatus)
	assert.NotEmpty(t, row.ParseError)

	// Но в каноническую таблицу не попадает
	products, err := unifiedRepo.GetProducts(context.Background(), []string{"1001"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMerge_AffiliateChangesNeverTriggerRefresh(t *testing.T) {
	ssotRepo := newMockSSOTRepo()
	partnerRepo := newMockPartnerRepo()
	unifiedRepo := newMockUnifiedRepo()
	log := nopLogger{}

	_, err := partnerRepo.UpsertProducts(context.Background(), []domain.PartnerProduct{{
		PartnerProductID: "AFF-1",
		Source:           domain.AllowedPartnerSource,
		Title:            "Blender",
		AffiliateLink:    "https://example.com/aff-1",
		UsageMode:        domain.UsageModeCommercial,
	}})
	require.NoError(t, err)

	merger := NewMergeUC(ssotRepo, partnerRepo, unifiedRepo, &mockCacheRepo{}, fakeDB{}, domain.AllowedPartnerSource, log)

	res, candidates, err := merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upserted)
	assert.Empty(t, candidates, "аффилиатный трек регенерацию не вызывает")

	products, err := unifiedRepo.GetProducts(context.Background(), []string{"AFF-1"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Политика аффилиатного трека: nil-цена и обязательная оговорка
	assert.Nil(t, products[0].Price)
	assert.Equal(t, domain.AffiliatePriceDisclaimer, products[0].Disclaimer)
	assert.Equal(t, domain.SourceAffiliate, products[0].SourceType)

	// Изменение ссылки аффилиата кандидатов по-прежнему не порождает
	_, err = partnerRepo.UpsertProducts(context.Background(), []domain.PartnerProduct{{
		PartnerProductID: "AFF-1",
		Source:           domain.AllowedPartnerSource,
		Title:            "Blender",
		AffiliateLink:    "https://example.com/aff-1-v2",
		UsageMode:        domain.UsageModeCommercial,
	}})
	require.NoError(t, err)

	_, candidates, err = merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMerge_AffiliateChangeInvalidatesCache(t *testing.T) {
	ssotRepo := newMockSSOTRepo()
	partnerRepo := newMockPartnerRepo()
	unifiedRepo := newMockUnifiedRepo()
	cache := &mockCacheRepo{}

	affiliate := domain.PartnerProduct{
		PartnerProductID: "AFF-1",
		Source:           domain.AllowedPartnerSource,
		Title:            "Blender",
		AffiliateLink:    "https://example.com/aff-1",
		UsageMode:        domain.UsageModeCommercial,
	}
	_, err := partnerRepo.UpsertProducts(context.Background(), []domain.PartnerProduct{affiliate})
	require.NoError(t, err)

	merger := NewMergeUC(ssotRepo, partnerRepo, unifiedRepo, cache, fakeDB{}, domain.AllowedPartnerSource, nopLogger{})

	// Новая запись инвалидируется
	_, _, err = merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AFF-1"}, cache.deleted)

	// Повторное слияние без изменений кэш не трогает
	cache.deleted = nil
	_, _, err = merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cache.deleted)

	// Смена аффилиатной ссылки не порождает кандидата, но инвалидирует кэш
	affiliate.AffiliateLink = "https://example.com/aff-1-v2"
	_, err = partnerRepo.UpsertProducts(context.Background(), []domain.PartnerProduct{affiliate})
	require.NoError(t, err)

	_, candidates, err := merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, []string{"AFF-1"}, cache.deleted)
}

func TestMerge_OwnedFieldDiffEmitsCandidate(t *testing.T) {
	ssotRepo := newMockSSOTRepo()
	unifiedRepo := newMockUnifiedRepo()
	merger := NewMergeUC(ssotRepo, newMockPartnerRepo(), unifiedRepo, &mockCacheRepo{}, fakeDB{}, domain.AllowedPartnerSource, nopLogger{})

	row := domain.StoreProductRow{
		SKU:         "SKU-1",
		ProductID:   "1001",
		Name:        "Kettle",
		Price:       3990,
		Shipping:    "free",
		ProductLink: "https://shop.example.com/1001",
		ContentHash: "h1",
		ParseStatus: domain.ParseOK,
	}
	_, err := ssotRepo.UpsertRows(context.Background(), []domain.StoreProductRow{row})
	require.NoError(t, err)

	_, candidates, err := merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates, "первая запись — не дифф")

	// Изменение имени — не экономически значимое поле
	row.Name = "Electric Kettle"
	_, err = ssotRepo.UpsertRows(context.Background(), []domain.StoreProductRow{row})
	require.NoError(t, err)

	_, candidates, err = merger.Merge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)

	// Изменение цены — значимое
	row.Price = 4490
	_, err = ssotRepo.UpsertRows(context.Background(), []domain.StoreProductRow{row})
	require.NoError(t, err)

	_, candidates, err = merger.Merge(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "SKU-1", candidates[0].SKU)
	assert.Equal(t, ReasonFieldsChanged, candidates[0].Reason)
	assert.Contains(t, string(candidates[0].Payload), "price")
}
