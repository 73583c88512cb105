package http

import (
	"net/http"
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type productResponse struct {
	SKU         string     `json:"sku"`
	SourceType  string     `json:"source_type"`
	Name        string     `json:"name"`
	Price       *int64     `json:"price,omitempty"`
	Shipping    string     `json:"shipping,omitempty"`
	ProductLink string     `json:"product_link"`
	Options     string     `json:"options,omitempty"`
	Disclaimer  string     `json:"disclaimer,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type getProductsResponse struct {
	Products []productResponse `json:"products"`
	NotFound []string          `json:"not_found,omitempty"`
}

// getProducts
//
//	@Summary		Канонические записи по SKU
//	@Description	Возвращает записи единой таблицы для контентного конвейера. Для аффилиатного трека цена отсутствует и заменена оговоркой о волатильности
//	@Tags			products
//	@Produce		json
//	@Param			skus	query		string			true	"Список SKU через запятую"
//	@Success		200		{object}	getProductsResponse	"Найденные записи"
//	@Failure		400		{object}	ErrorResponse		"Пустой список SKU"
//	@Router			/products [get]
func (p *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	skus := parseSKUs(r.URL.Query().Get("skus"))

	res, err := p.productUsecase.GetProducts(r.Context(), skus)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	resp := getProductsResponse{
		Products: make([]productResponse, 0, len(res.Products)),
		NotFound: res.NotFound,
	}
	for _, product := range res.Products {
		resp.Products = append(resp.Products, toProductResponse(product))
	}

	WriteSuccess(w, http.StatusOK, resp)
}

func toProductResponse(product domain.CanonicalProduct) productResponse {
	return productResponse{
		SKU:         product.SKU,
		SourceType:  string(product.SourceType),
		Name:        product.Name,
		Price:       product.Price,
		Shipping:    product.Shipping,
		ProductLink: product.ProductLink,
		Options:     product.Options,
		Disclaimer:  product.Disclaimer,
		UpdatedAt:   product.UpdatedAt,
	}
}
