package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type RefreshHandler struct {
	refreshUsecase usecase.RefreshQueueUC
	logger         logger.Logger
}

func NewRefreshHandler(refreshUsecase usecase.RefreshQueueUC, logger logger.Logger) *RefreshHandler {
	return &RefreshHandler{refreshUsecase: refreshUsecase, logger: logger}
}

type refreshItemResponse struct {
	SKU        string    `json:"sku"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason"`
	RetryCount int       `json:"retry_count"`
	LastError  *string   `json:"last_error,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type markFailedRequest struct {
	Reason string `json:"reason"`
}

// listPending
//
//	@Summary		Ожидающие элементы очереди регенерации
//	@Description	Возвращает PENDING-элементы в порядке постановки
//	@Tags			refresh
//	@Produce		json
//	@Success		200	{array}		refreshItemResponse	"Элементы очереди"
//	@Failure		500	{object}	ErrorResponse		"Внутренняя ошибка"
//	@Router			/refresh/pending [get]
func (h *RefreshHandler) listPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.refreshUsecase.ListPending(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	resp := make([]refreshItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toRefreshItemResponse(item))
	}

	WriteSuccess(w, http.StatusOK, resp)
}

// markProcessing
//
//	@Summary	Взятие элемента в работу
//	@Tags		refresh
//	@Produce	json
//	@Param		sku	path		string			true	"SKU"
//	@Success	200	{object}	map[string]any	"Переход выполнен"
//	@Failure	404	{object}	ErrorResponse	"Элемент не найден"
//	@Failure	409	{object}	ErrorResponse	"Недопустимый переход статуса"
//	@Router		/refresh/{sku}/processing [post]
func (h *RefreshHandler) markProcessing(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.refreshUsecase.MarkProcessing)
}

// markDone
//
//	@Summary	Успешное завершение регенерации
//	@Tags		refresh
//	@Produce	json
//	@Param		sku	path		string			true	"SKU"
//	@Success	200	{object}	map[string]any	"Переход выполнен"
//	@Failure	404	{object}	ErrorResponse	"Элемент не найден"
//	@Failure	409	{object}	ErrorResponse	"Недопустимый переход статуса"
//	@Router		/refresh/{sku}/done [post]
func (h *RefreshHandler) markDone(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.refreshUsecase.MarkDone)
}

// markFailed
//
//	@Summary		Фиксация сбоя регенерации
//	@Description	Переводит элемент в FAILED, увеличивает счётчик попыток и сохраняет причину
//	@Tags			refresh
//	@Accept			json
//	@Produce		json
//	@Param			sku		path		string				true	"SKU"
//	@Param			body	body		markFailedRequest	true	"Причина сбоя"
//	@Success		200		{object}	map[string]any		"Переход выполнен"
//	@Failure		404		{object}	ErrorResponse		"Элемент не найден"
//	@Failure		409		{object}	ErrorResponse		"Недопустимый переход статуса"
//	@Router			/refresh/{sku}/failed [post]
func (h *RefreshHandler) markFailed(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var req markFailedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if err := h.refreshUsecase.MarkFailed(r.Context(), sku, req.Reason); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"sku":    sku,
		"status": domain.RefreshFailed,
	})
}

// requeue
//
//	@Summary	Возврат элемента в очередь
//	@Tags		refresh
//	@Produce	json
//	@Param		sku	path		string			true	"SKU"
//	@Success	200	{object}	map[string]any	"Переход выполнен"
//	@Failure	404	{object}	ErrorResponse	"Элемент не найден"
//	@Failure	409	{object}	ErrorResponse	"Недопустимый переход статуса"
//	@Router		/refresh/{sku}/requeue [post]
func (h *RefreshHandler) requeue(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.refreshUsecase.Requeue)
}

func (h *RefreshHandler) transition(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, sku string) error) {
	sku := chi.URLParam(r, "sku")

	if err := apply(r.Context(), sku); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"sku": sku,
	})
}

func toRefreshItemResponse(item domain.RefreshItem) refreshItemResponse {
	return refreshItemResponse{
		SKU:        item.SKU,
		Status:     string(item.Status),
		Reason:     item.Reason,
		RetryCount: item.RetryCount,
		LastError:  item.LastError,
		EnqueuedAt: item.EnqueuedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
