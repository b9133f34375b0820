package enums

import "fmt"

// ServiceCategory groups salon services.
type ServiceCategory string

const (
	ServiceCategoryHaircut  ServiceCategory = "haircut"
	ServiceCategoryColoring ServiceCategory = "coloring"
	ServiceCategorySpa      ServiceCategory = "spa"
)

var validServiceCategories = []ServiceCategory{
	ServiceCategoryHaircut,
	ServiceCategoryColoring,
	ServiceCategorySpa,
}

// IsValid reports whether the value is a known ServiceCategory.
func (c ServiceCategory) IsValid() bool {
	for _, candidate := range validServiceCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseServiceCategory converts raw input into a ServiceCategory.
func ParseServiceCategory(value string) (ServiceCategory, error) {
	for _, candidate := range validServiceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service category %q", value)
}
