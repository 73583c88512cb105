package usecase

import (
	"fmt"
	"strings"

	"github.com/content-os/commerce-sync/internal/domain"
)

// ValidatePartnerRows проверяет батч партнёрского фида по политике источников.
// allowedSource — единственный источник, допустимый к коммерческому использованию.
// Возвращает по одному нарушению на каждую некорректную строку; непустой
// результат означает отказ в записи всего батча.
func ValidatePartnerRows(products []domain.PartnerProduct, allowedSource string) []Violation {
	violations := make([]Violation, 0)

	for i, product := range products {
		id := product.PartnerProductID
		if id == "" {
			id = fmt.Sprintf("row %d", i)
		}

		if reason := validatePartnerRow(product, allowedSource); reason != "" {
			violations = append(violations, Violation{ID: id, Reason: reason})
		}
	}

	return violations
}

func validatePartnerRow(product domain.PartnerProduct, allowedSource string) string {
	if product.PartnerProductID == "" {
		return "missing partner product id"
	}

	// Коммерческое переиспользование закрытых источников запрещено платформой
	if _, disallowed := domain.DisallowedCommercialSources[product.Source]; disallowed &&
		product.UsageMode == domain.UsageModeCommercial {
		return fmt.Sprintf("commercial reuse of restricted source %q", product.Source)
	}

	if product.Source != allowedSource {
		return fmt.Sprintf("unexpected source %q", product.Source)
	}

	if product.UsageMode != domain.UsageModeCommercial {
		return fmt.Sprintf("unsupported usage mode %q", product.UsageMode)
	}

	if !strings.HasPrefix(product.AffiliateLink, "http://") &&
		!strings.HasPrefix(product.AffiliateLink, "https://") {
		return fmt.Sprintf("invalid affiliate link %q", product.AffiliateLink)
	}

	if product.ContentType != "" {
		if _, ok := domain.AllowedContentTypes[product.ContentType]; !ok {
			return fmt.Sprintf("unknown content type %q", product.ContentType)
		}
	}

	return ""
}
