package domain

import "encoding/json"

// ListingResponse is the body of one catalog listing page
// (/front/api/catalog/plp). Every level is optional so that a missing path
// can be told apart from an empty product list.
type ListingResponse struct {
	Data *ListingData `json:"data"`
}

type ListingData struct {
	Products *ListingProducts `json:"products"`
}

type ListingProducts struct {
	Products []ListingEntry `json:"products"`
}

// ListingEntry is a product stub from a listing page. Its fields are decoded
// lazily so that one odd entry never fails the whole page.
type ListingEntry struct {
	fields map[string]Value
}

func (e *ListingEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]Value
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: keep the entry, reading any field will report it.
		e.fields = nil
		return nil
	}
	e.fields = fields
	return nil
}

// URL returns the path of the product page relative to the site origin.
func (e ListingEntry) URL() (string, error) {
	v, ok := e.fields["url"]
	if !ok {
		return "", NewShapeError("products[].url")
	}
	return v.String(), nil
}

// ItemID returns the identifier used to request the product card.
func (e ListingEntry) ItemID() (Value, error) {
	v, ok := e.fields["itemId"]
	if !ok {
		return nil, NewShapeError("products[].itemId")
	}
	return v, nil
}

// Rating returns reviews.rating, or the "no rating data" sentinel when the
// entry has no reviews section or it is empty.
func (e ListingEntry) Rating() (Value, error) {
	reviews, ok := e.fields["reviews"]
	if !ok || !reviews.Truthy() {
		return TextValue(NoRatingData), nil
	}

	var section map[string]Value
	if err := json.Unmarshal(reviews, &section); err != nil {
		return nil, &ShapeError{Path: "products[].reviews", Err: err}
	}

	rating, ok := section["rating"]
	if !ok {
		return nil, NewShapeError("products[].reviews.rating")
	}
	return rating, nil
}
