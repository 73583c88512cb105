package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/repository/redis/converter"
	"github.com/content-os/commerce-sync/pkg/clients"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	"github.com/jimlawless/whereami"
)

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CanonicalProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CanonicalProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает закэшированные записи по SKU. Промахи возвращаются
// вторым значением, порядок запрошенных SKU в попаданиях сохраняется.
func (r *CacheRepo) GetProducts(ctx context.Context, skus []string) ([]domain.CanonicalProduct, []string, error) {
	keys := r.buildProductCacheKeys(skus)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Warnf("Redis MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]domain.CanonicalProduct, 0, len(values))
	misses := make([]string, 0)
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			r.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			misses = append(misses, skus[i])
			continue // cache miss
		}

		model, err := r.unmarshalProductFromCache(data)
		if err != nil {
			r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			misses = append(misses, skus[i])
			continue
		}

		if model.SKU != skus[i] {
			r.logger.Warnf("Cache SKU mismatch: key_sku: %s, model_sku: %s", skus[i], model.SKU)
			if err := r.client.Client.Del(context.Background(), keys[i]).Err(); err != nil {
				r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			misses = append(misses, skus[i])
			continue // cache miss
		}
		hits = append(hits, *r.conv.ToEntity(model))
	}

	return hits, misses, nil
}

// SetProducts атомарно кэширует несколько записей с заданным TTL.
// Игнорирует ошибки сериализации/записи, логируя их.
func (r *CacheRepo) SetProducts(ctx context.Context, products []domain.CanonicalProduct) error {
	models := r.conv.ToArrRedisModel(products)

	pipeline := r.client.Client.Pipeline()
	for _, model := range models {
		data, err := r.marshalProductForCache(model)
		if err != nil {
			r.logger.Warnf("Failed to marshal product for caching (SKU: %s): %v", model.SKU, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		key := r.productKey(model.SKU)
		pipeline.Set(ctx, key, data, r.cfg.ProductTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		r.logger.Warnf("Cache pipeline failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts удаляет записи из кэша по SKU
func (r *CacheRepo) DeleteProducts(ctx context.Context, skus []string) error {
	if len(skus) == 0 {
		return nil
	}

	keys := r.buildProductCacheKeys(skus)

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// marshalProductForCache сериализует запись в JSON для кэша
func (r *CacheRepo) marshalProductForCache(model converter.CanonicalProductRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// unmarshalProductFromCache десериализует JSON из кэша в модель записи
func (r *CacheRepo) unmarshalProductFromCache(data []byte) (*converter.CanonicalProductRedisModel, error) {
	var model converter.CanonicalProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// buildProductCacheKeys формирует Redis-ключи из SKU
func (r *CacheRepo) buildProductCacheKeys(skus []string) []string {
	keys := make([]string, len(skus))
	for i, sku := range skus {
		keys[i] = r.productKey(sku)
	}

	return keys
}

// productKey возвращает Redis-ключ для одной записи
func (r *CacheRepo) productKey(sku string) string {
	return fmt.Sprintf("product:%s", sku)
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
