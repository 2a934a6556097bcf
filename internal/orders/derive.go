package orders

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize matches the console's fixed page length.
const DefaultPageSize = 10

// StatusFilter is an order status or the catch-all "All".
type StatusFilter string

const StatusFilterAll StatusFilter = "All"

// ListQuery is the view state driving the derivation pipeline.
type ListQuery struct {
	Status   StatusFilter
	Search   string
	SortAsc  bool
	Page     int
	PageSize int
}

// DeriveAll runs the filter, search, and sort stages without pagination.
// The stage order is fixed; reordering would change tie-break results.
func DeriveAll(input []Order, q ListQuery) []Order {
	needle := strings.ToLower(q.Search)
	filtered := make([]Order, 0, len(input))
	for _, order := range input {
		if q.Status != "" && q.Status != StatusFilterAll && OrderStatus(q.Status) != order.Status {
			continue
		}
		if q.Search != "" {
			byName := strings.Contains(strings.ToLower(order.Name), needle)
			// ID matching is a raw substring test on the decimal form.
			byID := strings.Contains(strconv.FormatInt(order.ID, 10), q.Search)
			if !byName && !byID {
				continue
			}
		}
		filtered = append(filtered, order)
	}

	// Equal timestamps must keep their input order.
	sort.SliceStable(filtered, func(i, j int) bool {
		if q.SortAsc {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[j].CreatedAt.Before(filtered[i].CreatedAt)
	})
	return filtered
}

// Derive produces the visible page and the total page count. A page beyond
// the end yields an empty slice; clamping is the caller's job, not the
// pipeline's.
func Derive(input []Order, q ListQuery) ([]Order, int) {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	filtered := DeriveAll(input, q)

	totalPages := (len(filtered) + q.PageSize - 1) / q.PageSize
	start := (q.Page - 1) * q.PageSize
	if start >= len(filtered) {
		return []Order{}, totalPages
	}
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}
