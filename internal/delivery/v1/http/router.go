package http

import (
	_ "github.com/content-os/commerce-sync/docs" // Импорт сгенерированных файлов
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(syncUC usecase.SyncUC, partnerUC usecase.PartnerUC,
	refreshUC usecase.RefreshQueueUC, productUC usecase.ProductUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerSyncRoutes(v1, NewSyncHandler(syncUC, r.logger))
		registerPartnerRoutes(v1, NewPartnerHandler(partnerUC, r.logger))
		registerRefreshRoutes(v1, NewRefreshHandler(refreshUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(productUC, r.logger))
	})
}

func registerSyncRoutes(router chi.Router, handler *SyncHandler) {
	router.Route("/sync", func(s chi.Router) {
		s.Post("/store", handler.syncStore)
	})
}

func registerPartnerRoutes(router chi.Router, handler *PartnerHandler) {
	router.Route("/partner", func(p chi.Router) {
		p.Post("/import", handler.importFeed)
	})
}

func registerRefreshRoutes(router chi.Router, handler *RefreshHandler) {
	router.Route("/refresh", func(rf chi.Router) {
		rf.Get("/pending", handler.listPending)
		rf.Post("/{sku}/processing", handler.markProcessing)
		rf.Post("/{sku}/done", handler.markDone)
		rf.Post("/{sku}/failed", handler.markFailed)
		rf.Post("/{sku}/requeue", handler.requeue)
	})
}

func registerProductRoutes(router chi.Router, handler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", handler.getProducts)
	})
}
