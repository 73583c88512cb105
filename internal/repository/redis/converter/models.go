package converter

import "time"

type CanonicalProductRedisModel struct {
	SKU         string     `json:"sku"`
	SourceType  string     `json:"source_type"`
	Name        string     `json:"name"`
	Price       *int64     `json:"price,omitempty"`
	Shipping    string     `json:"shipping"`
	ProductLink string     `json:"product_link"`
	Options     string     `json:"options,omitempty"`
	Disclaimer  string     `json:"disclaimer,omitempty"`
	Provenance  []byte     `json:"provenance,omitempty"`
	ContentHash string     `json:"content_hash"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
