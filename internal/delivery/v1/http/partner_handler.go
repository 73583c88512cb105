package http

import (
	"net/http"

	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/logger"
)

type PartnerHandler struct {
	partnerUsecase usecase.PartnerUC
	logger         logger.Logger
}

func NewPartnerHandler(partnerUsecase usecase.PartnerUC, logger logger.Logger) *PartnerHandler {
	return &PartnerHandler{partnerUsecase: partnerUsecase, logger: logger}
}

type importFeedResponse struct {
	Status     string              `json:"status"`
	Upserted   int                 `json:"upserted"`
	Violations []usecase.Violation `json:"violations,omitempty"`
}

// importFeed
//
//	@Summary		Импорт партнёрского фида
//	@Description	Загружает аффилиатный фид, валидирует источники и записывает батч целиком. Любое нарушение политики источников отклоняет весь батч без частичной записи
//	@Tags			partner
//	@Produce		json
//	@Success		200	{object}	importFeedResponse	"Батч записан"
//	@Failure		400	{object}	ErrorResponse		"Пустой или недоступный фид"
//	@Failure		422	{object}	importFeedResponse	"Батч отклонён политикой источников"
//	@Router			/partner/import [post]
func (p *PartnerHandler) importFeed(w http.ResponseWriter, r *http.Request) {
	res, err := p.partnerUsecase.ImportFeed(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	resp := importFeedResponse{
		Status:     res.Status,
		Upserted:   res.Upserted,
		Violations: res.Violation,
	}

	if res.Status == usecase.StatusReject {
		WriteSuccess(w, http.StatusUnprocessableEntity, resp)
		return
	}

	WriteSuccess(w, http.StatusOK, resp)
}
