package commerce

import (
	"testing"

	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_APIVersionVariants(t *testing.T) {
	n := NewNormalizer()

	t.Run("flat payload", func(t *testing.T) {
		row := n.Normalize("1001", []byte(`{
			"sku": "SKU-1",
			"name": "Kettle",
			"price": 39.9,
			"currency": "USD",
			"status": "SALE",
			"shipping_fee": "3.5",
			"product_link": "https://shop.example.com/1001"
		}`))

		assert.Equal(t, domain.ParseOK, row.ParseStatus)
		assert.Equal(t, "SKU-1", row.SKU)
		assert.Equal(t, "1001", row.ProductID)
		assert.Equal(t, "Kettle", row.Name)
		assert.Equal(t, int64(3990), row.Price, "цена хранится в минорных единицах")
		assert.Equal(t, "USD", row.Currency)
		assert.Equal(t, "SALE", row.Status)
		assert.Equal(t, "3.5", row.Shipping)
		assert.Equal(t, "https://shop.example.com/1001", row.ProductLink)
		assert.NotEmpty(t, row.ContentHash)
	})

	t.Run("seller api variant with nested delivery", func(t *testing.T) {
		row := n.Normalize("2002", []byte(`{
			"sellerManagementCode": "SKU-2",
			"productName": "Toaster",
			"salePrice": "25000",
			"saleStatus": "ON_SALE",
			"deliveryInfo": {"baseFee": 2500},
			"productUrl": "https://shop.example.com/2002"
		}`))

		assert.Equal(t, domain.ParseOK, row.ParseStatus)
		assert.Equal(t, "SKU-2", row.SKU)
		assert.Equal(t, "Toaster", row.Name)
		assert.Equal(t, int64(2500000), row.Price)
		assert.Equal(t, "KRW", row.Currency, "валюта по умолчанию")
		assert.Equal(t, "ON_SALE", row.Status)
		assert.Equal(t, "2500", row.Shipping)
	})

	t.Run("sku falls back to product id", func(t *testing.T) {
		row := n.Normalize("3003", []byte(`{"name":"Mixer","price":10}`))

		assert.Equal(t, domain.ParseOK, row.ParseStatus)
		assert.Equal(t, "3003", row.SKU)
	})
}

func TestNormalize_HashStability(t *testing.T) {
	n := NewNormalizer()

	// Одинаковые поля в другом порядке — тот же хэш
	a := n.Normalize("1001", []byte(`{"sku":"S","name":"N","price":10,"status":"SALE"}`))
	b := n.Normalize("1001", []byte(`{"status":"SALE","price":10,"sku":"S","name":"N"}`))
	assert.Equal(t, a.ContentHash, b.ContentHash)

	// Изменение цены меняет хэш
	c := n.Normalize("1001", []byte(`{"sku":"S","name":"N","price":11,"status":"SALE"}`))
	assert.NotEqual(t, a.ContentHash, c.ContentHash)

	// Неизвестные волатильные поля на хэш не влияют
	d := n.Normalize("1001", []byte(`{"sku":"S","name":"N","price":10,"status":"SALE","fetched_at":"2025-06-01T00:00:00Z"}`))
	assert.Equal(t, a.ContentHash, d.ContentHash)
}

func TestNormalize_DegradesOnParseFailure(t *testing.T) {
	n := NewNormalizer()

	t.Run("invalid json", func(t *testing.T) {
		row := n.Normalize("1001", []byte("<html>oops</html>"))

		assert.Equal(t, domain.ParseFail, row.ParseStatus)
		assert.Equal(t, "1001", row.SKU, "в деградированной строке SKU — сырой идентификатор")
		assert.NotEmpty(t, row.ParseError)
		assert.NotEmpty(t, row.ContentHash)
		assert.Equal(t, []byte("<html>oops</html>"), row.RawPayload)
	})

	t.Run("unparseable price", func(t *testing.T) {
		row := n.Normalize("1002", []byte(`{"sku":"S","price":"N/A won"}`))

		assert.Equal(t, domain.ParseFail, row.ParseStatus)
		assert.Contains(t, row.ParseError, "price")
	})

	t.Run("non-object payload", func(t *testing.T) {
		row := n.Normalize("1003", []byte(`null`))

		assert.Equal(t, domain.ParseFail, row.ParseStatus)
	})
}

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"float", 39.9, 3990},
		{"integer string", "25000", 2500000},
		{"decimal string", "3.5", 350},
		{"missing", nil, 0},
		{"empty string", "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toMinorUnits(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := toMinorUnits("free")
	require.Error(t, err)
}
