package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
)

const uploadLimit = 4

// ArchiveInfrastructure сохраняет сырые ответы Commerce API по запускам
// синхронизации: runs/<runID>/<productID>.json. Архив — диагностическая
// стадия: сбой по одному объекту не прерывает остальные.
type ArchiveInfrastructure struct {
	archiveRepo usecase.ArchiveRepository
	logger      logger.Logger
}

func NewArchiveInfrastructure(archiveRepo usecase.ArchiveRepository, logger logger.Logger) *ArchiveInfrastructure {
	return &ArchiveInfrastructure{
		archiveRepo: archiveRepo,
		logger:      logger,
	}
}

// ArchiveRun выгружает сырые ответы запуска параллельно с ограничением
// одновременных операций. Возвращает ошибку, если хотя бы один объект
// сохранить не удалось.
func (a *ArchiveInfrastructure) ArchiveRun(ctx context.Context, runID string, details []usecase.RawDetail) error {
	const op = "ArchiveInfrastructure.ArchiveRun"

	if len(details) == 0 {
		return nil
	}

	errCh := make(chan error, len(details))
	sem := make(chan struct{}, uploadLimit)

	var wg sync.WaitGroup
	for _, detail := range details {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := fmt.Sprintf("runs/%s/%s.json", runID, detail.ProductID)
			if err := a.archiveRepo.Put(ctx, key, detail.Payload); err != nil {
				a.logger.Warnf("Failed to archive detail. key: %s, error: %v", key, err)
				errCh <- err
			}
		}()
	}

	wg.Wait()
	close(errCh)

	failed := len(errCh)
	if failed > 0 {
		return e.Wrap(op, fmt.Errorf("%d of %d objects failed", failed, len(details)))
	}

	return nil
}
