package usecase

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
)

// SSOTRepository — таблица истины по товарам собственного магазина.
type SSOTRepository interface {
	// GetHashes возвращает сохранённые хэши содержимого для запрошенных SKU
	// одним батч-запросом. Отсутствующие SKU в карте не представлены.
	GetHashes(ctx context.Context, skus []string) (map[string]string, error)
	// UpsertRows записывает строки чанками в рамках транзакции из контекста.
	// Возвращает число фактически изменённых строк.
	UpsertRows(ctx context.Context, rows []domain.StoreProductRow) (int, error)
	ListRows(ctx context.Context) ([]domain.StoreProductRow, error)
}

// PartnerRepository — товары партнёрского (аффилиатного) трека.
type PartnerRepository interface {
	UpsertProducts(ctx context.Context, products []domain.PartnerProduct) (int, error)
	ListProducts(ctx context.Context, source string) ([]domain.PartnerProduct, error)
}

// UnifiedRepository — каноническая таблица, потребляемая контентным конвейером.
type UnifiedRepository interface {
	Snapshot(ctx context.Context) (map[string]UnifiedSnapshotRow, error)
	UpsertProducts(ctx context.Context, products []domain.CanonicalProduct) (int, error)
	GetProducts(ctx context.Context, skus []string) ([]domain.CanonicalProduct, error)
}

// RefreshQueueRepository — очередь регенерации контента.
type RefreshQueueRepository interface {
	// Enqueue ставит кандидатов в очередь. Повторная постановка живого SKU
	// перезаписывает запись и возвращает её в PENDING, не создавая дубликата.
	Enqueue(ctx context.Context, candidates []RefreshCandidate) (int, error)
	GetItem(ctx context.Context, sku string) (*domain.RefreshItem, error)
	ListByStatus(ctx context.Context, status domain.RefreshStatus, limit int) ([]domain.RefreshItem, error)
	// SetStatus переводит элемент в next с проверкой допустимости перехода.
	SetStatus(ctx context.Context, sku string, next domain.RefreshStatus, lastError *string, incrementRetry bool) error
}

// OutboxRepository — транзакционный outbox событий очереди регенерации.
type OutboxRepository interface {
	InsertEvents(ctx context.Context, events []*OutboxEvent) error
	// GetAndMarkAsProcessing атомарно забирает порцию PENDING-событий
	// (FOR UPDATE SKIP LOCKED) и помечает их PROCESSING.
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}

// ArchiveRepository — объектное хранилище сырых ответов Commerce API.
type ArchiveRepository interface {
	Put(ctx context.Context, key string, payload []byte) error
}

// CacheRepository — кэш канонических записей по SKU.
type CacheRepository interface {
	GetProducts(ctx context.Context, skus []string) ([]domain.CanonicalProduct, []string, error)
	SetProducts(ctx context.Context, products []domain.CanonicalProduct) error
	DeleteProducts(ctx context.Context, skus []string) error
}
