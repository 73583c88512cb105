//go:generate goverter gen github.com/content-os/commerce-sync/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertSourceType
// goverter:extend ConvertSourceTypeString
type CanonicalProductConverter interface {
	ToRedisModel(entity *domain.CanonicalProduct) *CanonicalProductRedisModel
	ToEntity(model *CanonicalProductRedisModel) *domain.CanonicalProduct
	ToArrRedisModel(entities []domain.CanonicalProduct) []CanonicalProductRedisModel
	ToArrEntity(models []CanonicalProductRedisModel) []domain.CanonicalProduct
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertSourceType(s domain.SourceType) string {
	return string(s)
}

func ConvertSourceTypeString(s string) domain.SourceType {
	return domain.SourceType(s)
}
