package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/content-os/commerce-sync/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingSKU):
		return http.StatusBadRequest, e.ErrMissingSKU.Error()
	case errors.Is(err, e.ErrNoProducts):
		return http.StatusBadRequest, e.ErrNoProducts.Error()
	case errors.Is(err, e.ErrEmptyFeed):
		return http.StatusBadRequest, e.ErrEmptyFeed.Error()
	case errors.Is(err, e.ErrRefreshItemNotFound):
		return http.StatusNotFound, e.ErrRefreshItemNotFound.Error()
	case errors.Is(err, e.ErrIllegalRefreshTransition):
		return http.StatusConflict, e.ErrIllegalRefreshTransition.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseSKUs разбирает query-параметр skus: список через запятую,
// пустые элементы отбрасываются.
func parseSKUs(raw string) []string {
	parts := strings.Split(raw, ",")
	skus := make([]string, 0, len(parts))
	for _, part := range parts {
		if sku := strings.TrimSpace(part); sku != "" {
			skus = append(skus, sku)
		}
	}

	return skus
}
