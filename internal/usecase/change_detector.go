package usecase

import (
	"encoding/json"

	"github.com/content-os/commerce-sync/internal/domain"
)

// ChangeClass — классификация строки относительно сохранённого хэша.
type ChangeClass string

const (
	ChangeNew       ChangeClass = "NEW"
	ChangeChanged   ChangeClass = "CHANGED"
	ChangeUnchanged ChangeClass = "UNCHANGED"
)

// ClassifyRow сравнивает хэш строки с сохранённым значением.
func ClassifyRow(row domain.StoreProductRow, storedHashes map[string]string) ChangeClass {
	stored, ok := storedHashes[row.SKU]
	if !ok {
		return ChangeNew
	}
	if stored != row.ContentHash {
		return ChangeChanged
	}
	return ChangeUnchanged
}

// ClassifyRows отбирает кандидатов на регенерацию: только NEW и CHANGED.
// storedHashes получается одним батч-запросом, не по запросу на строку.
func ClassifyRows(rows []domain.StoreProductRow, storedHashes map[string]string) []RefreshCandidate {
	candidates := make([]RefreshCandidate, 0, len(rows))

	for _, row := range rows {
		var reason string

		switch ClassifyRow(row, storedHashes) {
		case ChangeNew:
			reason = ReasonNewProduct
		case ChangeChanged:
			reason = ReasonProductChanged
		default:
			continue
		}

		payload, _ := json.Marshal(map[string]string{
			"sku":        row.SKU,
			"product_id": row.ProductID,
			"reason":     reason,
		})

		candidates = append(candidates, NewRefreshCandidate(row.SKU, reason, payload))
	}

	return candidates
}
