package http

import (
	"net/http"

	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/logger"
)

type SyncHandler struct {
	syncUsecase usecase.SyncUC
	logger      logger.Logger
}

func NewSyncHandler(syncUsecase usecase.SyncUC, logger logger.Logger) *SyncHandler {
	return &SyncHandler{syncUsecase: syncUsecase, logger: logger}
}

type syncResponse struct {
	Fetched    int            `json:"fetched"`
	Upserted   int            `json:"upserted"`
	Queued     int            `json:"queued"`
	Errors     int            `json:"errors"`
	Merge      *mergeResponse `json:"merge,omitempty"`
	FetchIDsMs int64          `json:"fetch_ids_ms"`
	FetchDetMs int64          `json:"fetch_details_ms"`
	PersistMs  int64          `json:"persist_ms"`
	TotalMs    int64          `json:"total_ms"`
}

type mergeResponse struct {
	Upserted     int      `json:"upserted"`
	RefreshCount int      `json:"refresh_count"`
	RefreshSKUs  []string `json:"refresh_skus,omitempty"`
}

// syncStore
//
//	@Summary		Синхронизация собственного магазина
//	@Description	Запускает полный цикл: выгрузка каталога из Commerce API, запись в таблицу истины, слияние треков и постановка изменившихся SKU в очередь регенерации
//	@Tags			sync
//	@Produce		json
//	@Success		200	{object}	syncResponse	"Результат синхронизации"
//	@Failure		500	{object}	ErrorResponse	"Сбой выгрузки каталога"
//	@Router			/sync/store [post]
func (s *SyncHandler) syncStore(w http.ResponseWriter, r *http.Request) {
	res, err := s.syncUsecase.SyncStore(r.Context())
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	resp := syncResponse{
		Fetched:    res.Fetched,
		Upserted:   res.Upserted,
		Queued:     res.Queued,
		Errors:     res.Errors,
		FetchIDsMs: res.Timings.FetchIDs.Milliseconds(),
		FetchDetMs: res.Timings.FetchDetails.Milliseconds(),
		PersistMs:  res.Timings.Persist.Milliseconds(),
		TotalMs:    res.Timings.Total.Milliseconds(),
	}
	if res.Merge != nil {
		resp.Merge = &mergeResponse{
			Upserted:     res.Merge.Upserted,
			RefreshCount: res.Merge.RefreshCount,
			RefreshSKUs:  res.Merge.RefreshSKUs,
		}
	}

	WriteSuccess(w, http.StatusOK, resp)
}
