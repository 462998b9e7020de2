package enums

import "fmt"

// ProductCategory represents the canonical garment categories in the catalog.
type ProductCategory string

const (
	ProductCategorySuits       ProductCategory = "suits"
	ProductCategoryShirts      ProductCategory = "shirts"
	ProductCategoryTrousers    ProductCategory = "trousers"
	ProductCategoryKaftans     ProductCategory = "kaftans"
	ProductCategoryAgbada      ProductCategory = "agbada"
	ProductCategoryTwoPiece    ProductCategory = "two_piece"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategorySuits,
	ProductCategoryShirts,
	ProductCategoryTrousers,
	ProductCategoryKaftans,
	ProductCategoryAgbada,
	ProductCategoryTwoPiece,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
