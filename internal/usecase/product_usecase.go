package usecase

import (
	"context"
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
)

// ProductUseCase — чтение канонических записей для контентного конвейера:
// сначала кэш, промахи добираются из БД и фоном кэшируются.
type ProductUseCase struct {
	unifiedRepo UnifiedRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductUC(
	unifiedRepo UnifiedRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		unifiedRepo: unifiedRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// GetProducts возвращает канонические записи по списку SKU.
func (p *ProductUseCase) GetProducts(ctx context.Context, skus []string) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProducts"

	if len(skus) == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	// Поиск в кэше; при ошибке кэша все SKU считаются промахами
	cached, misses, err := p.cacheRepo.GetProducts(ctx, skus)
	if err != nil {
		p.logger.Warnf("Cache lookup failed, falling back to db: %v", e.Wrap(op, err))
		cached, misses = nil, skus
	}

	var fromDB []domain.CanonicalProduct
	if len(misses) > 0 {
		fromDB, err = p.unifiedRepo.GetProducts(ctx, misses)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое наполнение кэша
		if len(fromDB) > 0 {
			toCache := fromDB
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
				defer cancel()

				if err := p.cacheRepo.SetProducts(bgCtx, toCache); err != nil {
					p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
				}
			}()
		}
	}

	found := make(map[string]domain.CanonicalProduct, len(cached)+len(fromDB))
	for _, product := range cached {
		found[product.SKU] = product
	}
	for _, product := range fromDB {
		found[product.SKU] = product
	}

	// Порядок результата повторяет порядок запроса
	products := make([]domain.CanonicalProduct, 0, len(skus))
	notFound := make([]string, 0)
	for _, sku := range skus {
		if product, ok := found[sku]; ok {
			products = append(products, product)
		} else {
			notFound = append(notFound, sku)
		}
	}

	return NewGetProductsRes(products, notFound), nil
}
