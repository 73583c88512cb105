package commerce

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "KRW"

// Кандидаты имён полей по версиям Commerce API: для каждого логического
// атрибута берётся первое непустое значение. Точка в кандидате —
// путь во вложенный объект.
var fieldCandidates = map[string][]string{
	"sku":      {"sku", "sellerManagementCode", "id"},
	"name":     {"name", "productName", "title"},
	"price":    {"price", "salePrice", "discountedPrice"},
	"currency": {"currency", "currencyCode"},
	"status":   {"status", "saleStatus", "statusType"},
	"shipping": {"deliveryInfo.baseFee", "deliveryFee", "shipping_fee"},
	"link":     {"product_link", "url", "productUrl"},
}

// Normalizer приводит разнородные ответы Commerce API к строке таблицы истины.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize разбирает сырой ответ по таблице кандидатов. Неразборная запись
// деградирует в строку PARSE_FAIL с сырым payload и идентификатором вместо SKU —
// батч продолжается, запись остаётся отслеживаемой.
func (n *Normalizer) Normalize(productID string, payload []byte) domain.StoreProductRow {
	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return degradedRow(productID, payload, err)
	}
	if parsed == nil {
		return degradedRow(productID, payload, fmt.Errorf("payload is not an object"))
	}

	priceRaw := lookup(parsed, fieldCandidates["price"])
	price, err := toMinorUnits(priceRaw)
	if err != nil {
		return degradedRow(productID, payload, err)
	}

	sku := stringAt(parsed, fieldCandidates["sku"])
	if sku == "" {
		sku = productID
	}

	currency := stringAt(parsed, fieldCandidates["currency"])
	if currency == "" {
		currency = defaultCurrency
	}

	row := domain.StoreProductRow{
		SKU:         sku,
		ProductID:   productID,
		Name:        stringAt(parsed, fieldCandidates["name"]),
		Price:       price,
		Currency:    currency,
		Status:      stringAt(parsed, fieldCandidates["status"]),
		Shipping:    stringAt(parsed, fieldCandidates["shipping"]),
		ProductLink: stringAt(parsed, fieldCandidates["link"]),
		RawPayload:  payload,
		ParseStatus: domain.ParseOK,
	}
	row.ContentHash = contentHash(row)

	return row
}

// contentHash — стабильный дайджест нормализованной строки: сериализация
// с сортированными ключами, волатильные поля (временные метки, сырой payload)
// исключены, поэтому логически одинаковые ответы хэшируются одинаково.
func contentHash(row domain.StoreProductRow) string {
	canonical, _ := json.Marshal(map[string]any{
		"sku":          row.SKU,
		"product_id":   row.ProductID,
		"name":         row.Name,
		"price":        row.Price,
		"currency":     row.Currency,
		"status":       row.Status,
		"shipping":     row.Shipping,
		"product_link": row.ProductLink,
		"parse_status": string(row.ParseStatus),
	})

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

func degradedRow(productID string, payload []byte, err error) domain.StoreProductRow {
	row := domain.StoreProductRow{
		SKU:         productID,
		ProductID:   productID,
		RawPayload:  payload,
		ParseStatus: domain.ParseFail,
		ParseError:  err.Error(),
	}
	row.ContentHash = contentHash(row)

	return row
}

// toMinorUnits переводит цену в минорные единицы валюты без потери точности.
func toMinorUnits(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("unparseable price %q: %w", v, err)
		}
		return parsed.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
	default:
		return 0, fmt.Errorf("unsupported price type %T", raw)
	}
}

// lookup возвращает значение первого найденного кандидата, поддерживая
// вложенные пути через точку.
func lookup(parsed map[string]any, candidates []string) any {
	for _, candidate := range candidates {
		current := any(parsed)
		found := true

		for _, part := range strings.Split(candidate, ".") {
			obj, ok := current.(map[string]any)
			if !ok {
				found = false
				break
			}
			current, ok = obj[part]
			if !ok {
				found = false
				break
			}
		}

		if found && current != nil {
			return current
		}
	}

	return nil
}

func stringAt(parsed map[string]any, candidates []string) string {
	switch v := lookup(parsed, candidates).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		d := decimal.NewFromFloat(v)
		return d.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	}

	return ""
}
