package client

import (
	"encoding/json"
	"errors"
	"testing"

	"goldapple/parser/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeListing(t *testing.T, body string) *domain.ListingResponse {
	t.Helper()
	var page *domain.ListingResponse
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	return page
}

func decodeCard(t *testing.T, body string) *domain.ProductCardResponse {
	t.Helper()
	var card *domain.ProductCardResponse
	require.NoError(t, json.Unmarshal([]byte(body), &card))
	return card
}

func TestExtractListing(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantLen int
	}{
		{"two products", `{"data":{"products":{"products":[{"name":"Product1"},{"name":"Product2"}]}}}`, true, 2},
		{"extra sibling keys", `{"data":{"products":{"products":[{"name":"Product 1"},{"name":"Product 2"}],"extra_key":"extra_value"}}}`, true, 2},
		{"wrong typed fields", `{"data":{"products":{"products":[{"name":123},{"name":"Product 2"}]}}}`, true, 2},
		{"inconsistent entries", `{"data":{"products":{"products":[{"name":"Product 1"},{"product_name":"Product 2"}]}}}`, true, 2},
		{"non object entry", `{"data":{"products":{"products":[42,{"url":"/a"}]}}}`, true, 2},
		{"empty list", `{"data":{"products":{"products":[]}}}`, true, 0},
		{"null body", `null`, false, 0},
		{"empty object", `{}`, false, 0},
		{"missing products", `{"data":{}}`, false, 0},
		{"missing inner products", `{"data":{"products":{}}}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, ok := ExtractListing(decodeListing(t, tt.body))
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, products, tt.wantLen)
		})
	}
}

func TestExtractListing_Nil(t *testing.T) {
	products, ok := ExtractListing(nil)
	assert.False(t, ok)
	assert.Nil(t, products)
}

func TestExtractDetail_AllKeys(t *testing.T) {
	card := decodeCard(t, `{
		"data": {
			"productDescription": [
				{"title": "Product Title", "content": "Product Description"},
				{"title": "Instructions", "content": "Product Instructions"},
				{"title": "Other Info", "content": "Other Info"},
				{"subtitle": "Brand Country"}
			],
			"variants": [
				{"price": {"regular": {"amount": 100}, "discount": {"amount": 80}}}
			]
		}
	}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)

	assert.Equal(t, "Product Description", details.Description)
	assert.Equal(t, "Product Instructions", details.Instructions)
	assert.Equal(t, "Product Title", details.Name.String())
	assert.Equal(t, domain.Value(`100`), details.RegularPrice)
	assert.Equal(t, domain.Value(`80`), details.DiscountPrice)
	assert.Equal(t, "Brand Country", details.BrandCountry.String())
}

func TestExtractDetail_ExtraKeys(t *testing.T) {
	card := decodeCard(t, `{
		"data": {
			"productDescription": [
				{"title": "Product Title", "content": "Product Description", "extra_key": 1},
				{"title": "Instructions", "content": "Product Instructions"},
				{"title": "Other Info", "content": "Other Info"},
				{"subtitle": "Brand Country", "extra_key": "extra_value"}
			],
			"variants": [
				{"price": {"regular": {"amount": 100}, "discount": {"amount": 80}, "extra_key": "extra_value"}, "sku": "x"}
			],
			"extra_key": "extra_value"
		},
		"meta": {}
	}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)

	assert.Equal(t, "Product Description", details.Description)
	assert.Equal(t, "Product Instructions", details.Instructions)
	assert.Equal(t, "Product Title", details.Name.String())
	assert.Equal(t, "100", details.RegularPrice.String())
	assert.Equal(t, "80", details.DiscountPrice.String())
	assert.Equal(t, "Brand Country", details.BrandCountry.String())
}

func TestExtractDetail_StringAmountsKeepType(t *testing.T) {
	card := decodeCard(t, `{
		"data": {
			"productDescription": [
				{"title": "Test Product", "content": "This is a test description."},
				{"title": "Instructions", "content": "This is a test instruction."}
			],
			"variants": [{"price": {"regular": {"amount": "100"}, "discount": {"amount": "80"}}}]
		}
	}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)

	assert.Equal(t, domain.ProductDetails{
		Description:   "This is a test description.",
		Instructions:  "This is a test instruction.",
		Name:          domain.Value(`"Test Product"`),
		RegularPrice:  domain.Value(`"100"`),
		DiscountPrice: domain.Value(`"80"`),
		BrandCountry:  domain.TextValue(domain.CountryNotSpecified),
	}, details)
	assert.True(t, details.DiscountPrice.IsString())
	assert.False(t, domain.Value(`80`).IsString())
}

func TestExtractDetail_NoDiscount(t *testing.T) {
	card := decodeCard(t, `{
		"data": {
			"productDescription": [{"title": "N", "content": "D"}, {"content": "I"}],
			"variants": [{"price": {"regular": {"amount": 100}}}]
		}
	}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)
	assert.Equal(t, "no discount", details.DiscountPrice.String())
}

func TestExtractDetail_BrandCountryFallback(t *testing.T) {
	tests := []struct {
		name   string
		blocks string
		want   string
	}{
		{"three blocks", `[{"title":"N","content":"D"},{"content":"I"},{"content":"x"}]`, "country not specified"},
		{"fourth block without subtitle", `[{"title":"N","content":"D"},{"content":"I"},{"content":"x"},{"title":"Brand"}]`, "country not specified"},
		{"fourth block with subtitle", `[{"title":"N","content":"D"},{"content":"I"},{"content":"x"},{"subtitle":"France"}]`, "France"},
		{"fifth block ignored", `[{"title":"N","content":"D"},{"content":"I"},{"content":"x"},{},{"subtitle":"Italy"}]`, "country not specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := decodeCard(t, `{"data":{"productDescription":`+tt.blocks+`,"variants":[{"price":{"regular":{"amount":1}}}]}}`)

			details, err := ExtractDetail(card)
			require.NoError(t, err)
			assert.Equal(t, tt.want, details.BrandCountry.String())
		})
	}
}

func TestExtractDetail_NonStringSubtitleVerbatim(t *testing.T) {
	card := decodeCard(t, `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"},{},{"subtitle":7}],"variants":[{"price":{"regular":{"amount":1}}}]}}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)
	assert.Equal(t, domain.Value(`7`), details.BrandCountry)
}

func TestExtractDetail_IgnoresUnreadPositions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array content in block 2", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"},{"title":"Composition","content":["water","oil"]}],"variants":[{"price":{"regular":{"amount":1}}}]}}`},
		{"numeric title in block 1", `{"data":{"productDescription":[{"title":"N","content":"D"},{"title":5,"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`},
		{"string price in variant 1", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}},{"price":"n/a"}]}}`},
		{"scalar block 2", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"},"plain text"],"variants":[{"price":{"regular":{"amount":1}}}]}}`},
		{"object subtitle in block 4", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"},{},{},{"subtitle":{"a":1},"content":false}],"variants":[{"price":{"regular":{"amount":1}}}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := ExtractDetail(decodeCard(t, tt.body))
			require.NoError(t, err)

			assert.Equal(t, "D", details.Description)
			assert.Equal(t, "I", details.Instructions)
			assert.Equal(t, "N", details.Name.String())
			assert.Equal(t, "1", details.RegularPrice.String())
			assert.Equal(t, "no discount", details.DiscountPrice.String())
		})
	}
}

func TestExtractDetail_NonStringTitleVerbatim(t *testing.T) {
	card := decodeCard(t, `{"data":{"productDescription":[{"title":12345,"content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)
	assert.Equal(t, domain.Value(`12345`), details.Name)
	assert.Equal(t, "12345", details.Name.String())
}

func TestExtractDetail_NullDiscountMeansNoDiscount(t *testing.T) {
	card := decodeCard(t, `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1},"discount":null}}]}}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)
	assert.Equal(t, domain.TextValue(domain.NoDiscount), details.DiscountPrice)
}

func TestExtractDetail_StripsLineBreaks(t *testing.T) {
	card := decodeCard(t, `{
		"data": {
			"productDescription": [
				{"title": "N", "content": "line one<br>line two<br><br>end"},
				{"content": "<b>shake</b><br>apply<br/>"}
			],
			"variants": [{"price": {"regular": {"amount": 1}}}]
		}
	}`)

	details, err := ExtractDetail(card)
	require.NoError(t, err)
	assert.Equal(t, "line oneline twoend", details.Description)
	assert.Equal(t, "<b>shake</b>apply<br/>", details.Instructions)
}

func TestExtractDetail_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"no data", `{}`, "data"},
		{"single block", `{"data":{"productDescription":[{"title":"N","content":"D"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[1]"},
		{"no content", `{"data":{"productDescription":[{"title":"N"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[0].content"},
		{"no title", `{"data":{"productDescription":[{"content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[0].title"},
		{"no variants", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[]}}`, "variants[0]"},
		{"no regular", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":{"discount":{"amount":1}}}]}}`, "variants[0].price.regular.amount"},
		{"no regular amount", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{}}}]}}`, "variants[0].price.regular.amount"},
		{"array content", `{"data":{"productDescription":[{"title":"N","content":["a"]},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[0].content"},
		{"null instructions", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":null}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[1].content"},
		{"scalar block", `{"data":{"productDescription":["N",{"content":"I"}],"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[0].content"},
		{"no description", `{"data":{"variants":[{"price":{"regular":{"amount":1}}}]}}`, "productDescription[0]"},
		{"null price", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":null}]}}`, "variants[0].price"},
		{"no discount amount", `{"data":{"productDescription":[{"title":"N","content":"D"},{"content":"I"}],"variants":[{"price":{"regular":{"amount":1},"discount":{}}}]}}`, "variants[0].price.discount.amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractDetail(decodeCard(t, tt.body))

			var shapeErr *domain.ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.path, shapeErr.Path)
		})
	}
}

func TestStripLineBreaks(t *testing.T) {
	assert.Equal(t, "ab", StripLineBreaks("a<br>b"))
	assert.Equal(t, "no markup", StripLineBreaks("no markup"))
	assert.Equal(t, "<BR>kept<br />kept", StripLineBreaks("<BR>kept<br />kept"))
}
