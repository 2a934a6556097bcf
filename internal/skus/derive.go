package skus

import "strings"

// StatusFilter selects SKUs by their active flag.
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "All"
	StatusFilterActive   StatusFilter = "Active"
	StatusFilterInactive StatusFilter = "Inactive"
)

// Derive filters the collection by active state, then by a case-insensitive
// substring match on name or code. No sort stage is defined for SKUs.
func Derive(input []SKU, filter StatusFilter, search string) []SKU {
	needle := strings.ToLower(search)
	result := make([]SKU, 0, len(input))
	for _, sku := range input {
		switch filter {
		case StatusFilterActive:
			if !sku.Active {
				continue
			}
		case StatusFilterInactive:
			if sku.Active {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(sku.Name), needle) &&
			!strings.Contains(strings.ToLower(sku.Code), needle) {
			continue
		}
		result = append(result, sku)
	}
	return result
}
