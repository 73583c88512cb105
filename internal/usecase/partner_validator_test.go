package usecase

import (
	"testing"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePartnerRows(t *testing.T) {
	valid := domain.PartnerProduct{
		PartnerProductID: "P-1",
		Source:           domain.AllowedPartnerSource,
		ContentType:      "landing",
		UsageMode:        domain.UsageModeCommercial,
		AffiliateLink:    "https://example.com/p-1",
	}

	t.Run("valid batch", func(t *testing.T) {
		assert.Empty(t, ValidatePartnerRows([]domain.PartnerProduct{valid}, domain.AllowedPartnerSource))
	})

	t.Run("restricted commercial source", func(t *testing.T) {
		row := valid
		row.Source = "shopping_search_api"

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Equal(t, "P-1", violations[0].ID)
		assert.Contains(t, violations[0].Reason, "restricted source")
	})

	t.Run("unexpected source", func(t *testing.T) {
		row := valid
		row.Source = "somewhere_else"

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "unexpected source")
	})

	t.Run("non-commercial usage", func(t *testing.T) {
		row := valid
		row.UsageMode = "editorial"

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "usage mode")
	})

	t.Run("unknown content type", func(t *testing.T) {
		row := valid
		row.ContentType = "podcast"

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "content type")
	})

	t.Run("invalid affiliate link", func(t *testing.T) {
		row := valid
		row.AffiliateLink = "ftp://example.com/p-1"

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "affiliate link")
	})

	t.Run("missing id", func(t *testing.T) {
		row := valid
		row.PartnerProductID = ""

		violations := ValidatePartnerRows([]domain.PartnerProduct{row}, domain.AllowedPartnerSource)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "missing partner product id")
	})

	t.Run("one violation per offending row", func(t *testing.T) {
		bad1 := valid
		bad1.Source = "naver_shopping_openapi"
		bad1.PartnerProductID = "P-2"

		bad2 := valid
		bad2.ContentType = "podcast"
		bad2.PartnerProductID = "P-3"

		violations := ValidatePartnerRows([]domain.PartnerProduct{valid, bad1, bad2}, domain.AllowedPartnerSource)
		require.Len(t, violations, 2)
	})

	t.Run("configured source overrides default", func(t *testing.T) {
		row := valid
		row.Source = "custom_connect"

		assert.Empty(t, ValidatePartnerRows([]domain.PartnerProduct{row}, "custom_connect"))

		violations := ValidatePartnerRows([]domain.PartnerProduct{valid}, "custom_connect")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Reason, "unexpected source")
	})
}
