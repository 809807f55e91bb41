package client

import (
	"errors"
	"fmt"
	"strings"

	"goldapple/parser/internal/domain"
)

// ExtractListing returns the products of a listing page. ok is false when
// there is no page at all or it has no data.products.products; an empty but
// present list is returned with ok set.
func ExtractListing(page *domain.ListingResponse) (products []domain.ListingEntry, ok bool) {
	if page == nil || page.Data == nil || page.Data.Products == nil {
		return nil, false
	}
	if page.Data.Products.Products == nil {
		return nil, false
	}
	return page.Data.Products.Products, true
}

// ExtractDetail maps a product card onto the output fields. Description
// blocks are read by position; only the discount price and the brand country
// fall back to sentinels, every other missing key is a *domain.ShapeError.
// Blocks and variants that are not mapped are never looked at.
func ExtractDetail(card *domain.ProductCardResponse) (domain.ProductDetails, error) {
	var details domain.ProductDetails

	if card == nil || card.Data == nil {
		return details, domain.NewShapeError("data")
	}
	data := card.Data

	description, err := blockContent(data, 0)
	if err != nil {
		return details, err
	}
	details.Description = StripLineBreaks(description)

	instructions, err := blockContent(data, 1)
	if err != nil {
		return details, err
	}
	details.Instructions = StripLineBreaks(instructions)

	details.Name, err = blockField(data, 0, "title")
	if err != nil {
		return details, err
	}

	price, err := firstVariantPrice(data)
	if err != nil {
		return details, err
	}

	regular, _ := price.Field("regular")
	amount, ok := regular.Field("amount")
	if !ok {
		return details, domain.NewShapeError("variants[0].price.regular.amount")
	}
	details.RegularPrice = amount

	if discount, ok := price.Field("discount"); ok && !discount.IsNull() {
		amount, ok := discount.Field("amount")
		if !ok {
			return details, domain.NewShapeError("variants[0].price.discount.amount")
		}
		details.DiscountPrice = amount
	} else {
		details.DiscountPrice = domain.TextValue(domain.NoDiscount)
	}

	details.BrandCountry = domain.TextValue(domain.CountryNotSpecified)
	if block, ok := data.DescriptionBlock(3); ok {
		if subtitle, ok := block.Field("subtitle"); ok {
			details.BrandCountry = subtitle
		}
	}

	return details, nil
}

// StripLineBreaks removes every literal "<br>". Other markup is left as is.
func StripLineBreaks(s string) string {
	return strings.ReplaceAll(s, "<br>", "")
}

func blockField(card *domain.ProductCard, index int, key string) (domain.Value, error) {
	block, ok := card.DescriptionBlock(index)
	if !ok {
		return nil, domain.NewShapeError(fmt.Sprintf("productDescription[%d]", index))
	}
	value, ok := block.Field(key)
	if !ok {
		return nil, domain.NewShapeError(fmt.Sprintf("productDescription[%d].%s", index, key))
	}
	return value, nil
}

// blockContent returns the text of a block. Line breaks are stripped from it,
// so anything but a JSON string is a shape error.
func blockContent(card *domain.ProductCard, index int) (string, error) {
	content, err := blockField(card, index, "content")
	if err != nil {
		return "", err
	}
	if !content.IsString() {
		return "", &domain.ShapeError{
			Path: fmt.Sprintf("productDescription[%d].content", index),
			Err:  errors.New("not a string"),
		}
	}
	return content.String(), nil
}

func firstVariantPrice(card *domain.ProductCard) (domain.Value, error) {
	variant, ok := card.Variant(0)
	if !ok {
		return nil, domain.NewShapeError("variants[0]")
	}
	price, ok := variant.Field("price")
	if !ok || price.IsNull() {
		return nil, domain.NewShapeError("variants[0].price")
	}
	return price, nil
}
