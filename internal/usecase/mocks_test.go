package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx — заглушка pgx.Tx: транзакционность в юзкейс-тестах не проверяется,
// проверяется порядок вызовов и семантика слоя.
type fakeTx struct{}

func (fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeTx) Commit(_ context.Context) error          { return nil }
func (fakeTx) Rollback(_ context.Context) error        { return nil }
func (fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeDB struct{}

func (fakeDB) Begin(_ context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeDB) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

// mockCommerce возвращает преднастроенные идентификаторы и детали.
type mockCommerce struct {
	IDs        []string
	Details    []RawDetail
	FetchIDErr error
	DetailErrs int
}

func (m *mockCommerce) FetchProductIDs(_ context.Context) ([]string, error) {
	if m.FetchIDErr != nil {
		return nil, m.FetchIDErr
	}
	return m.IDs, nil
}

func (m *mockCommerce) FetchDetails(_ context.Context, _ []string) (*FetchDetailsRes, error) {
	return &FetchDetailsRes{Details: m.Details, Errors: m.DetailErrs}, nil
}

// mockNormalizer разбирает payload вида {"sku","name","price"};
// хэш — сырой payload, чего достаточно для классификации изменений.
type mockNormalizer struct{}

func (mockNormalizer) Normalize(productID string, payload []byte) domain.StoreProductRow {
	var parsed struct {
		SKU   string  `json:"sku"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return domain.StoreProductRow{
			SKU:         productID,
			ProductID:   productID,
			ContentHash: string(payload),
			RawPayload:  payload,
			ParseStatus: domain.ParseFail,
			ParseError:  err.Error(),
		}
	}

	return domain.StoreProductRow{
		SKU:         parsed.SKU,
		ProductID:   productID,
		Name:        parsed.Name,
		Price:       int64(parsed.Price * 100),
		ContentHash: string(payload),
		RawPayload:  payload,
		ParseStatus: domain.ParseOK,
	}
}

type mockSSOTRepo struct {
	rows map[string]domain.StoreProductRow
}

func newMockSSOTRepo() *mockSSOTRepo {
	return &mockSSOTRepo{rows: make(map[string]domain.StoreProductRow)}
}

func (m *mockSSOTRepo) GetHashes(_ context.Context, skus []string) (map[string]string, error) {
	hashes := make(map[string]string)
	for _, sku := range skus {
		if row, ok := m.rows[sku]; ok {
			hashes[sku] = row.ContentHash
		}
	}
	return hashes, nil
}

func (m *mockSSOTRepo) UpsertRows(_ context.Context, rows []domain.StoreProductRow) (int, error) {
	for _, row := range rows {
		m.rows[row.SKU] = row
	}
	return len(rows), nil
}

func (m *mockSSOTRepo) ListRows(_ context.Context) ([]domain.StoreProductRow, error) {
	rows := make([]domain.StoreProductRow, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

type mockPartnerRepo struct {
	products  map[string]domain.PartnerProduct
	UpsertErr error
}

func newMockPartnerRepo() *mockPartnerRepo {
	return &mockPartnerRepo{products: make(map[string]domain.PartnerProduct)}
}

func (m *mockPartnerRepo) UpsertProducts(_ context.Context, products []domain.PartnerProduct) (int, error) {
	if m.UpsertErr != nil {
		return 0, m.UpsertErr
	}
	for _, product := range products {
		m.products[product.PartnerProductID] = product
	}
	return len(products), nil
}

func (m *mockPartnerRepo) ListProducts(_ context.Context, source string) ([]domain.PartnerProduct, error) {
	products := make([]domain.PartnerProduct, 0, len(m.products))
	for _, product := range m.products {
		if product.Source == source {
			products = append(products, product)
		}
	}
	return products, nil
}

type mockUnifiedRepo struct {
	products map[string]domain.CanonicalProduct
}

func newMockUnifiedRepo() *mockUnifiedRepo {
	return &mockUnifiedRepo{products: make(map[string]domain.CanonicalProduct)}
}

func (m *mockUnifiedRepo) Snapshot(_ context.Context) (map[string]UnifiedSnapshotRow, error) {
	snapshot := make(map[string]UnifiedSnapshotRow, len(m.products))
	for sku, product := range m.products {
		snapshot[sku] = UnifiedSnapshotRow{
			SKU:         sku,
			SourceType:  product.SourceType,
			Price:       product.Price,
			Shipping:    product.Shipping,
			ProductLink: product.ProductLink,
		}
	}
	return snapshot, nil
}

func (m *mockUnifiedRepo) UpsertProducts(_ context.Context, products []domain.CanonicalProduct) (int, error) {
	for _, product := range products {
		m.products[product.SKU] = product
	}
	return len(products), nil
}

func (m *mockUnifiedRepo) GetProducts(_ context.Context, skus []string) ([]domain.CanonicalProduct, error) {
	products := make([]domain.CanonicalProduct, 0, len(skus))
	for _, sku := range skus {
		if product, ok := m.products[sku]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

// mockRefreshRepo повторяет семантику очереди: один живой элемент на SKU,
// повторная постановка перезаписывает, переходы статусов валидируются.
type mockRefreshRepo struct {
	items map[string]*domain.RefreshItem
}

func newMockRefreshRepo() *mockRefreshRepo {
	return &mockRefreshRepo{items: make(map[string]*domain.RefreshItem)}
}

func (m *mockRefreshRepo) Enqueue(_ context.Context, candidates []RefreshCandidate) (int, error) {
	for _, c := range candidates {
		m.items[c.SKU] = &domain.RefreshItem{
			SKU:     c.SKU,
			Status:  domain.RefreshPending,
			Reason:  c.Reason,
			Payload: c.Payload,
		}
	}
	return len(candidates), nil
}

func (m *mockRefreshRepo) GetItem(_ context.Context, sku string) (*domain.RefreshItem, error) {
	item, ok := m.items[sku]
	if !ok {
		return nil, e.ErrRefreshItemNotFound
	}
	return item, nil
}

func (m *mockRefreshRepo) ListByStatus(_ context.Context, status domain.RefreshStatus, limit int) ([]domain.RefreshItem, error) {
	items := make([]domain.RefreshItem, 0)
	for _, item := range m.items {
		if item.Status == status && len(items) < limit {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *mockRefreshRepo) SetStatus(_ context.Context, sku string, next domain.RefreshStatus, lastError *string, incrementRetry bool) error {
	item, ok := m.items[sku]
	if !ok {
		return e.ErrRefreshItemNotFound
	}
	if err := domain.ValidateRefreshTransition(item.Status, next); err != nil {
		return err
	}
	item.Status = next
	item.LastError = lastError
	if incrementRetry {
		item.RetryCount++
	}
	return nil
}

type mockOutboxRepo struct {
	events []*OutboxEvent
}

func (m *mockOutboxRepo) InsertEvents(_ context.Context, events []*OutboxEvent) error {
	m.events = append(m.events, events...)
	return nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return m.events, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error { return nil }
func (m *mockOutboxRepo) MarkAsPending(_ context.Context, _ int64) error   { return nil }

type mockCacheRepo struct {
	deleted []string
}

func (m *mockCacheRepo) GetProducts(_ context.Context, skus []string) ([]domain.CanonicalProduct, []string, error) {
	return nil, skus, nil
}

func (m *mockCacheRepo) SetProducts(_ context.Context, _ []domain.CanonicalProduct) error {
	return nil
}

func (m *mockCacheRepo) DeleteProducts(_ context.Context, skus []string) error {
	m.deleted = append(m.deleted, skus...)
	return nil
}

type mockArchive struct {
	runs int
}

func (m *mockArchive) ArchiveRun(_ context.Context, _ string, _ []RawDetail) error {
	m.runs++
	return nil
}

type mockFeed struct {
	rows []map[string]any
	err  error
}

func (m *mockFeed) Load(_ context.Context) ([]map[string]any, error) {
	return m.rows, m.err
}

// nopLogger — логгер-заглушка для тестов.
type nopLogger struct{}

func (nopLogger) Debugf(_ string, _ ...any)          {}
func (nopLogger) Infof(_ string, _ ...any)           {}
func (nopLogger) Warnf(_ string, _ ...any)           {}
func (nopLogger) Errorf(_ error, _ string, _ ...any) {}

func detailPayload(sku, name string, price float64) []byte {
	return []byte(fmt.Sprintf(`{"sku":%q,"name":%q,"price":%v}`, sku, name, price))
}
