package usecase

import (
	"context"
	"testing"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueueFixture(t *testing.T) (*RefreshQueueUseCase, *mockRefreshRepo) {
	t.Helper()

	repo := newMockRefreshRepo()
	_, err := repo.Enqueue(context.Background(), []RefreshCandidate{
		NewRefreshCandidate("SKU-1", ReasonNewProduct, []byte(`{"sku":"SKU-1"}`)),
	})
	require.NoError(t, err)

	return NewRefreshQueueUC(repo, fakeDB{}, nopLogger{}), repo
}

func TestRefreshQueue_HappyPath(t *testing.T) {
	uc, repo := newQueueFixture(t)
	ctx := context.Background()

	pending, err := uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "SKU-1", pending[0].SKU)

	require.NoError(t, uc.MarkProcessing(ctx, "SKU-1"))
	require.NoError(t, uc.MarkDone(ctx, "SKU-1"))

	item, err := repo.GetItem(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshDone, item.Status)
	assert.Equal(t, 0, item.RetryCount)
}

func TestRefreshQueue_FailedIncrementsRetry(t *testing.T) {
	uc, repo := newQueueFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.MarkProcessing(ctx, "SKU-1"))
	require.NoError(t, uc.MarkFailed(ctx, "SKU-1", "render timeout"))

	item, err := repo.GetItem(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshFailed, item.Status)
	assert.Equal(t, 1, item.RetryCount)
	require.NotNil(t, item.LastError)
	assert.Equal(t, "render timeout", *item.LastError)

	// Возврат в очередь не трогает счётчик попыток
	require.NoError(t, uc.Requeue(ctx, "SKU-1"))

	item, err = repo.GetItem(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshPending, item.Status)
	assert.Equal(t, 1, item.RetryCount)
}

func TestRefreshQueue_IllegalTransition(t *testing.T) {
	uc, _ := newQueueFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.MarkProcessing(ctx, "SKU-1"))
	require.NoError(t, uc.MarkDone(ctx, "SKU-1"))

	// DONE -> PROCESSING запрещён и не приводится к другому статусу
	err := uc.MarkProcessing(ctx, "SKU-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrIllegalRefreshTransition)
}

func TestRefreshQueue_UnknownSKU(t *testing.T) {
	uc, _ := newQueueFixture(t)

	err := uc.MarkDone(context.Background(), "SKU-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrRefreshItemNotFound)

	assert.ErrorIs(t, uc.MarkDone(context.Background(), ""), e.ErrMissingSKU)
}

func TestRefreshQueue_ReEnqueueDedup(t *testing.T) {
	_, repo := newQueueFixture(t)
	ctx := context.Background()

	// Повторная постановка того же SKU с другой причиной перезаписывает запись
	_, err := repo.Enqueue(ctx, []RefreshCandidate{
		NewRefreshCandidate("SKU-1", ReasonProductChanged, []byte(`{"sku":"SKU-1"}`)),
	})
	require.NoError(t, err)

	items, err := repo.ListByStatus(ctx, domain.RefreshPending, defaultPendingLimit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ReasonProductChanged, items[0].Reason)
}
