package usecase

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
)

// CommerceInfra — клиент Commerce API собственного магазина.
type CommerceInfra interface {
	// FetchProductIDs собирает идентификаторы всех товаров, проходя пагинацию
	// до конца. Любая ошибка здесь фатальна для запуска синхронизации.
	FetchProductIDs(ctx context.Context) ([]string, error)
	// FetchDetails загружает детали товаров ограниченным пулом воркеров.
	// Ошибка по одному товару не прерывает остальные.
	FetchDetails(ctx context.Context, ids []string) (*FetchDetailsRes, error)
}

// ProductNormalizer — разбор сырого ответа API в строку таблицы истины.
type ProductNormalizer interface {
	// Normalize никогда не возвращает ошибку наружу: неразборная запись
	// деградирует в строку со статусом PARSE_FAIL и сырым payload.
	Normalize(productID string, payload []byte) domain.StoreProductRow
}

// FeedInfra — загрузчик партнёрского фида (CSV/JSON, файл или HTTP).
type FeedInfra interface {
	Load(ctx context.Context) ([]map[string]any, error)
}

// ArchiveInfra — архив сырых ответов API по запускам синхронизации.
type ArchiveInfra interface {
	ArchiveRun(ctx context.Context, runID string, details []RawDetail) error
}

// MessageProducer — публикация событий очереди регенерации в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// WriteRawMessageReq — сообщение для брокера: ключ партиционирования и тело.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
