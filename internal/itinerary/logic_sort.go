package itinerary

import (
	"sort"

	"tripsearch/pkg/logger"
)

func (s *Service) applySorting(itins []Itinerary, opts ViewOptions) []Itinerary {
	if opts.SortBy == "" || len(itins) <= 1 {
		return itins
	}

	// returning a new slice keeps the stored result set untouched
	sorted := make([]Itinerary, len(itins))
	copy(sorted, itins)

	switch opts.SortBy {
	case SortByPrice:
		sortByPrice(sorted)
	case SortByDuration:
		sortByDuration(sorted)
	default:
		s.logger.Warn("invalid_sort_criteria", logger.Field{Key: "sort_by", Value: opts.SortBy})
	}

	return sorted
}

// Using SliceStable to prevent UI jumping when values are equal.
// Itineraries without a price always order after priced ones.
func sortByPrice(itins []Itinerary) {
	sort.SliceStable(itins, func(i, j int) bool {
		pi, pj := itins[i].Price, itins[j].Price
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return *pi < *pj
	})
}

func sortByDuration(itins []Itinerary) {
	sort.SliceStable(itins, func(i, j int) bool {
		return itins[i].TotalDurationMinutes() < itins[j].TotalDurationMinutes()
	})
}
