package domain

import "time"

// SourceType — трек происхождения канонической записи.
type SourceType string

const (
	SourceOwnedStore SourceType = "OWNED_STORE"
	SourceAffiliate  SourceType = "AFFILIATE"
)

// AffiliatePriceDisclaimer — обязательная оговорка о волатильности цены
// для аффилиатных товаров: цена в канонической записи не хранится.
const AffiliatePriceDisclaimer = "가격/혜택은 변동될 수 있습니다(작성일 기준). 최신 정보는 링크에서 확인하세요."

// CanonicalProduct — унифицированная запись товара, потребляемая контентным
// конвейером. SKU уникален независимо от трека; запись никогда не удаляется,
// только перезаписывается при очередной синхронизации.
type CanonicalProduct struct {
	SKU         string
	SourceType  SourceType
	Name        string
	Price       *int64 // nil для аффилиатного трека
	Shipping    string
	ProductLink string
	Options     string
	Disclaimer  string
	Provenance  []byte // сырые метаданные источника (JSON)
	ContentHash string
	UpdatedAt   *time.Time
}
