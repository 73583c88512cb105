package usecase

import (
	"context"
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SyncUseCase реализует синхронизацию собственного магазина: выгрузка каталога
// из Commerce API, нормализация, запись в таблицу истины, слияние треков
// и постановка изменившихся SKU в очередь регенерации контента.
type SyncUseCase struct {
	commerce    CommerceInfra
	normalizer  ProductNormalizer
	ssotRepo    SSOTRepository
	refreshRepo RefreshQueueRepository
	outboxRepo  OutboxRepository
	archive     ArchiveInfra
	merger      *MergeUseCase
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewSyncUC(
	commerce CommerceInfra,
	normalizer ProductNormalizer,
	ssotRepo SSOTRepository,
	refreshRepo RefreshQueueRepository,
	outboxRepo OutboxRepository,
	archive ArchiveInfra,
	merger *MergeUseCase,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		commerce:    commerce,
		normalizer:  normalizer,
		ssotRepo:    ssotRepo,
		refreshRepo: refreshRepo,
		outboxRepo:  outboxRepo,
		archive:     archive,
		merger:      merger,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// SyncStore выполняет один запуск синхронизации. Ошибка по отдельному товару
// не прерывает запуск и учитывается в Errors; ошибка получения списка
// идентификаторов или записи в БД фатальна.
func (s *SyncUseCase) SyncStore(ctx context.Context) (*SyncRes, error) {
	const op = "SyncUseCase.SyncStore"

	totalStart := time.Now()
	res := &SyncRes{}

	// Список идентификаторов — без него запуск невозможен
	fetchIDsStart := time.Now()
	ids, err := s.commerce.FetchProductIDs(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	res.Timings.FetchIDs = time.Since(fetchIDsStart)
	res.Fetched = len(ids)

	// Детали товаров ограниченным пулом воркеров
	fetchDetailsStart := time.Now()
	detailsRes, err := s.commerce.FetchDetails(ctx, ids)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	res.Timings.FetchDetails = time.Since(fetchDetailsStart)
	res.Errors = detailsRes.Errors

	rows := make([]domain.StoreProductRow, 0, len(detailsRes.Details))
	for _, detail := range detailsRes.Details {
		rows = append(rows, s.normalizer.Normalize(detail.ProductID, detail.Payload))
	}

	persistStart := time.Now()

	// Один батч-запрос хэшей вместо запроса на строку
	storedHashes, err := s.ssotRepo.GetHashes(ctx, rowSKUs(rows))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	candidates := ClassifyRows(rows, storedHashes)

	res.Upserted, err = s.persistRows(ctx, rows)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Слияние треков поверх обновлённой таблицы истины
	mergeRes, mergeCandidates, err := s.merger.Merge(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	res.Merge = mergeRes

	res.Queued, err = s.enqueueCandidates(ctx, unionCandidates(candidates, mergeCandidates))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res.Timings.Persist = time.Since(persistStart)

	// Архив сырых ответов — некритичная стадия
	runID := uuid.NewString()
	if err := s.archive.ArchiveRun(ctx, runID, detailsRes.Details); err != nil {
		s.logger.Warnf("Failed to archive sync run. run_id: %s, error: %v", runID, e.Wrap(op, err))
	}

	res.Timings.Total = time.Since(totalStart)

	s.logger.Infof(
		"Store sync finished. fetched: %d, upserted: %d, queued: %d, errors: %d, took: %s",
		res.Fetched, res.Upserted, res.Queued, res.Errors, res.Timings.Total,
	)

	return res, nil
}

// persistRows записывает нормализованные строки в таблицу истины одной транзакцией.
func (s *SyncUseCase) persistRows(ctx context.Context, rows []domain.StoreProductRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	upserted, err := s.ssotRepo.UpsertRows(ctx, rows)
	if err != nil {
		return 0, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return 0, err
	}

	return upserted, nil
}

// enqueueCandidates ставит кандидатов в очередь регенерации и в той же
// транзакции пишет события в outbox для последующей публикации в брокер.
func (s *SyncUseCase) enqueueCandidates(ctx context.Context, candidates []RefreshCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	queued, err := s.refreshRepo.Enqueue(ctx, candidates)
	if err != nil {
		return 0, err
	}

	events := make([]*OutboxEvent, 0, len(candidates))
	for _, c := range candidates {
		events = append(events, NewOutboxEvent(EventRefreshEnqueued, c.SKU, c.Payload))
	}
	err = s.outboxRepo.InsertEvents(ctx, events)
	if err != nil {
		return 0, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return 0, err
	}

	return queued, nil
}

// unionCandidates объединяет кандидатов двух стадий по SKU.
// Детектор изменений специфичнее диффа слияния, поэтому при пересечении
// остаётся его причина.
func unionCandidates(detected, merged []RefreshCandidate) []RefreshCandidate {
	seen := make(map[string]struct{}, len(detected))
	union := make([]RefreshCandidate, 0, len(detected)+len(merged))

	for _, c := range detected {
		seen[c.SKU] = struct{}{}
		union = append(union, c)
	}
	for _, c := range merged {
		if _, ok := seen[c.SKU]; ok {
			continue
		}
		union = append(union, c)
	}

	return union
}

func rowSKUs(rows []domain.StoreProductRow) []string {
	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		skus = append(skus, row.SKU)
	}
	return skus
}
