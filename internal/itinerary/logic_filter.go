package itinerary

// applyFilters returns a fresh slice so the unfiltered set stays
// recoverable for the next view request.
func applyFilters(itins []Itinerary, opts ViewOptions) []Itinerary {
	if !opts.DirectOnly {
		return itins
	}

	// Pre-allocate assuming worst case (nothing filtered) to avoid resizing
	filtered := make([]Itinerary, 0, len(itins))

	for _, it := range itins {
		if it.Direct() {
			filtered = append(filtered, it)
		}
	}

	return filtered
}
