//go:generate goverter gen github.com/content-os/commerce-sync/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/internal/usecase"
)

// StoreProductConverter преобразует строки собственного магазина между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertParseStatus
type StoreProductConverter interface {
	ToModel(entity *domain.StoreProductRow) *StoreProductModel
	ToEntity(model *StoreProductModel) *domain.StoreProductRow
	ToArrEntity(models []*StoreProductModel) []*domain.StoreProductRow
}

// PartnerProductConverter преобразует партнёрские записи между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type PartnerProductConverter interface {
	ToModel(entity *domain.PartnerProduct) *PartnerProductModel
	ToEntity(model *PartnerProductModel) *domain.PartnerProduct
	ToArrEntity(models []*PartnerProductModel) []*domain.PartnerProduct
}

// CanonicalProductConverter преобразует канонические записи между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertSourceType
type CanonicalProductConverter interface {
	ToModel(entity *domain.CanonicalProduct) *CanonicalProductModel
	ToEntity(model *CanonicalProductModel) *domain.CanonicalProduct
	ToArrEntity(models []*CanonicalProductModel) []*domain.CanonicalProduct
}

// RefreshItemConverter преобразует элементы очереди регенерации между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertRefreshStatus
type RefreshItemConverter interface {
	ToModel(entity *domain.RefreshItem) *RefreshItemModel
	ToEntity(model *RefreshItemModel) *domain.RefreshItem
	ToArrEntity(models []*RefreshItemModel) []*domain.RefreshItem
}

// OutboxEventConverter преобразует события outbox между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertParseStatus(s domain.ParseStatus) string {
	return string(s)
}

func ConvertSourceType(s domain.SourceType) string {
	return string(s)
}

func ConvertRefreshStatus(s domain.RefreshStatus) string {
	return string(s)
}

func ConvertOutboxStatus(s usecase.OutboxStatus) string {
	return string(s)
}

func ConvertOutboxEventType(t usecase.OutboxEventType) string {
	return string(t)
}
