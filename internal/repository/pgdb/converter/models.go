package converter

import "time"

// StoreProductModel представляет запись таблицы products_ssot в PostgreSQL.
type StoreProductModel struct {
	SKU         string     `db:"sku"`
	ProductID   string     `db:"product_id"`
	Name        string     `db:"name"`
	Price       int64      `db:"price"`
	Currency    string     `db:"currency"`
	Status      string     `db:"status"`
	Shipping    string     `db:"shipping"`
	ProductLink string     `db:"product_link"`
	ContentHash string     `db:"content_hash"`
	RawPayload  []byte     `db:"raw_payload"`
	ParseStatus string     `db:"parse_status"`
	ParseError  string     `db:"parse_error"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// PartnerProductModel представляет запись таблицы partner_products в PostgreSQL.
type PartnerProductModel struct {
	PartnerProductID string     `db:"partner_product_id"`
	Source           string     `db:"source"`
	Title            string     `db:"title"`
	Category         string     `db:"category"`
	Keywords         string     `db:"keywords"`
	ContentType      string     `db:"content_type"`
	AffiliateLink    string     `db:"affiliate_link"`
	UsageMode        string     `db:"usage_mode"`
	RawPayload       []byte     `db:"raw_payload"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// CanonicalProductModel представляет запись канонической таблицы products в PostgreSQL.
type CanonicalProductModel struct {
	SKU         string     `db:"sku"`
	SourceType  string     `db:"source_type"`
	Name        string     `db:"name"`
	Price       *int64     `db:"price"`
	Shipping    string     `db:"shipping"`
	ProductLink string     `db:"product_link"`
	Options     string     `db:"options"`
	Disclaimer  string     `db:"disclaimer"`
	Provenance  []byte     `db:"provenance"`
	ContentHash string     `db:"content_hash"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// RefreshItemModel представляет запись таблицы refresh_queue в PostgreSQL.
type RefreshItemModel struct {
	SKU        string    `db:"sku"`
	Status     string    `db:"status"`
	Reason     string    `db:"reason"`
	Payload    []byte    `db:"payload"`
	RetryCount int       `db:"retry_count"`
	LastError  *string   `db:"last_error"`
	EnqueuedAt time.Time `db:"enqueued_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	SKU         string     `db:"sku"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
