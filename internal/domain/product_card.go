package domain

// ProductCardResponse is the body of /front/api/catalog/product-card.
type ProductCardResponse struct {
	Data *ProductCard `json:"data"`
}

// ProductCard keeps description blocks and variants raw. Only the positions we
// map are decoded when read, so whatever sits in the other blocks or variants
// never fails a card. Blocks are positional: 0 is name and description, 1 is
// usage instructions and 3, when present, may carry the brand country as its
// subtitle.
type ProductCard struct {
	ProductDescription Value `json:"productDescription"`
	Variants           Value `json:"variants"`
}

// DescriptionBlock returns description block index, raw.
func (c *ProductCard) DescriptionBlock(index int) (Value, bool) {
	return c.ProductDescription.Index(index)
}

// Variant returns variant index, raw.
func (c *ProductCard) Variant(index int) (Value, bool) {
	return c.Variants.Index(index)
}

// ProductDetails is the product card mapped onto the output schema, still
// without link and rating.
type ProductDetails struct {
	Description   string
	Instructions  string
	Name          Value
	RegularPrice  Value
	DiscountPrice Value
	BrandCountry  Value
}
