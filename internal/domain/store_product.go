package domain

import "time"

// ParseStatus — исход нормализации сырого ответа Commerce API.
type ParseStatus string

const (
	ParseOK   ParseStatus = "OK"
	ParseFail ParseStatus = "PARSE_FAIL"
)

// StoreProductRow — нормализованная строка товара собственного магазина (SSOT-кэш).
// ContentHash — стабильный дайджест сырого ответа, по которому определяется,
// изменился ли товар с прошлой синхронизации.
type StoreProductRow struct {
	SKU         string
	ProductID   string
	Name        string
	Price       int64 // Цена в минорных единицах валюты
	Currency    string
	Status      string
	Shipping    string
	ProductLink string
	ContentHash string
	RawPayload  []byte
	ParseStatus ParseStatus
	ParseError  string
	UpdatedAt   *time.Time
}
