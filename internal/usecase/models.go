package usecase

import (
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
)

// SYNC USECASE

// SyncRes — структурированный результат синхронизации собственного магазина.
// Возвращается даже при частичных сбоях: оператор видит
// fetched/upserted/queued/errors вместо непрозрачного падения.
type SyncRes struct {
	Fetched  int
	Upserted int
	Queued   int
	Errors   int
	Merge    *MergeRes
	Timings  SyncTimings
}

// SyncTimings — длительности стадий синхронизации.
type SyncTimings struct {
	FetchIDs     time.Duration
	FetchDetails time.Duration
	Persist      time.Duration
	Total        time.Duration
}

// MergeRes — результат слияния двух треков в единую каноническую таблицу.
type MergeRes struct {
	Upserted     int
	RefreshCount int
	RefreshSKUs  []string
}

// Причины постановки SKU в очередь регенерации.
const (
	ReasonNewProduct     = "NEW_PRODUCT"
	ReasonProductChanged = "PRODUCT_CHANGED"
	ReasonFieldsChanged  = "PRODUCT_FIELDS_CHANGED"
)

// RefreshCandidate — кандидат на регенерацию контента.
type RefreshCandidate struct {
	SKU     string
	Reason  string
	Payload []byte
}

// UnifiedSnapshotRow — срез канонической таблицы до слияния,
// по которому определяются экономически значимые изменения.
type UnifiedSnapshotRow struct {
	SKU         string
	SourceType  domain.SourceType
	Price       *int64
	Shipping    string
	ProductLink string
}

// INFRASTRUCTURE

// RawDetail — сырой ответ Commerce API по одному товару.
type RawDetail struct {
	ProductID string
	Payload   []byte
}

// FetchDetailsRes — результат параллельной загрузки деталей:
// неудачные запросы не прерывают остальные, а считаются в Errors.
type FetchDetailsRes struct {
	Details []RawDetail
	Errors  int
}

// PARTNER USECASE

const (
	StatusPass   = "PASS"
	StatusReject = "REJECT"
)

// Violation — причина отклонения одной строки партнёрского фида.
type Violation struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ImportFeedRes — результат импорта партнёрского фида.
// При любом нарушении весь батч отклоняется без частичной записи.
type ImportFeedRes struct {
	Status    string
	Upserted  int
	Violation []Violation
}

// PRODUCT USECASE

// GetProductsRes — ответ с каноническими записями запрошенных SKU.
type GetProductsRes struct {
	Products []domain.CanonicalProduct
	NotFound []string
}

// MAPPERS

func NewGetProductsRes(products []domain.CanonicalProduct, notFound []string) *GetProductsRes {
	return &GetProductsRes{
		Products: products,
		NotFound: notFound,
	}
}

func NewRawDetail(productID string, payload []byte) RawDetail {
	return RawDetail{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewRefreshCandidate(sku, reason string, payload []byte) RefreshCandidate {
	return RefreshCandidate{
		SKU:     sku,
		Reason:  reason,
		Payload: payload,
	}
}
