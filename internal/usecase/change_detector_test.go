package usecase

import (
	"testing"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRow(t *testing.T) {
	stored := map[string]string{
		"SKU-1": "aaa",
		"SKU-2": "bbb",
	}

	assert.Equal(t, ChangeUnchanged, ClassifyRow(domain.StoreProductRow{SKU: "SKU-1", ContentHash: "aaa"}, stored))
	assert.Equal(t, ChangeChanged, ClassifyRow(domain.StoreProductRow{SKU: "SKU-2", ContentHash: "ccc"}, stored))
	assert.Equal(t, ChangeNew, ClassifyRow(domain.StoreProductRow{SKU: "SKU-3", ContentHash: "ddd"}, stored))
}

func TestClassifyRows(t *testing.T) {
	stored := map[string]string{
		"SKU-1": "aaa",
		"SKU-2": "bbb",
	}

	rows := []domain.StoreProductRow{
		{SKU: "SKU-1", ProductID: "1", ContentHash: "aaa"}, // без изменений
		{SKU: "SKU-2", ProductID: "2", ContentHash: "ccc"}, // хэш отличается
		{SKU: "SKU-3", ProductID: "3", ContentHash: "ddd"}, // прежнего хэша нет
	}

	candidates := ClassifyRows(rows, stored)
	require.Len(t, candidates, 2)

	assert.Equal(t, "SKU-2", candidates[0].SKU)
	assert.Equal(t, ReasonProductChanged, candidates[0].Reason)
	assert.Contains(t, string(candidates[0].Payload), `"product_id":"2"`)

	assert.Equal(t, "SKU-3", candidates[1].SKU)
	assert.Equal(t, ReasonNewProduct, candidates[1].Reason)
}

func TestClassifyRows_Empty(t *testing.T) {
	assert.Empty(t, ClassifyRows(nil, map[string]string{}))
}
