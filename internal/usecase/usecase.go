package usecase

import (
	"context"

	"github.com/content-os/commerce-sync/internal/domain"
)

type SyncUC interface {
	SyncStore(ctx context.Context) (*SyncRes, error)
}

type PartnerUC interface {
	ImportFeed(ctx context.Context) (*ImportFeedRes, error)
}

type RefreshQueueUC interface {
	ListPending(ctx context.Context) ([]domain.RefreshItem, error)
	MarkProcessing(ctx context.Context, sku string) error
	MarkDone(ctx context.Context, sku string) error
	MarkFailed(ctx context.Context, sku string, reason string) error
	Requeue(ctx context.Context, sku string) error
}

type ProductUC interface {
	GetProducts(ctx context.Context, skus []string) (*GetProductsRes, error)
}
