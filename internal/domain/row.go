package domain

const (
	NoRatingData        = "no rating data"
	NoDiscount          = "no discount"
	CountryNotSpecified = "country not specified"
)

// OutputColumns is the header of the output file, in column order.
var OutputColumns = []string{
	"link",
	"user-rating",
	"description",
	"usage-instructions",
	"name",
	"brand-country",
	"regular-price",
	"discount-price",
}

// OutputRow is one persisted product. Sentinels fill in whatever the API did not return.
type OutputRow struct {
	Link          string `json:"link"`
	Rating        Value  `json:"user_rating"`
	Description   string `json:"description"`
	Instructions  string `json:"usage_instructions"`
	Name          Value  `json:"name"`
	BrandCountry  Value  `json:"brand_country"`
	RegularPrice  Value  `json:"regular_price"`
	DiscountPrice Value  `json:"discount_price"`
}

func NewOutputRow(link string, rating Value, details ProductDetails) *OutputRow {
	return &OutputRow{
		Link:          link,
		Rating:        rating,
		Description:   details.Description,
		Instructions:  details.Instructions,
		Name:          details.Name,
		BrandCountry:  details.BrandCountry,
		RegularPrice:  details.RegularPrice,
		DiscountPrice: details.DiscountPrice,
	}
}

// Record renders the row in OutputColumns order.
func (r *OutputRow) Record() []string {
	return []string{
		r.Link,
		r.Rating.String(),
		r.Description,
		r.Instructions,
		r.Name.String(),
		r.BrandCountry.String(),
		r.RegularPrice.String(),
		r.DiscountPrice.String(),
	}
}

// RunStats summarizes one pipeline run. Items counts attempted products,
// Rows only the ones that were written.
type RunStats struct {
	RunID string `json:"run_id"`
	Pages int    `json:"pages"`
	Items int    `json:"items"`
	Rows  int    `json:"rows"`
}
