package domain

import "time"

const (
	// AllowedPartnerSource — единственный партнёрский источник,
	// допустимый к коммерческому использованию.
	AllowedPartnerSource = "shopping_connect"

	UsageModeCommercial = "commercial"
)

// DisallowedCommercialSources — источники, коммерческое переиспользование
// которых запрещено условиями платформы. Строка из такого источника
// блокирует запись всего батча.
var DisallowedCommercialSources = map[string]struct{}{
	"naver_shopping_openapi": {},
	"shopping_search_api":    {},
}

// AllowedContentTypes — допустимые типы контента в партнёрском фиде.
var AllowedContentTypes = map[string]struct{}{
	"landing":    {},
	"review":     {},
	"comparison": {},
	"shorts":     {},
}

// PartnerProduct — строка партнёрского (аффилиатного) каталога.
type PartnerProduct struct {
	PartnerProductID string
	Source           string
	Title            string
	Category         string
	Keywords         string
	ContentType      string
	AffiliateLink    string
	UsageMode        string
	RawPayload       []byte
	UpdatedAt        *time.Time
}
