package enums

import "fmt"

// ProductCategory groups the bakery catalog.
type ProductCategory string

const (
	ProductCategoryCookie ProductCategory = "cookie"
	ProductCategoryCake   ProductCategory = "cake"
	ProductCategoryBread  ProductCategory = "bread"
	ProductCategoryDrink  ProductCategory = "drink"
)

var validProductCategories = []ProductCategory{
	ProductCategoryCookie,
	ProductCategoryCake,
	ProductCategoryBread,
	ProductCategoryDrink,
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
