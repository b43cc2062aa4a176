package itinerary

import (
	"fmt"

	"tripsearch/pkg/durfmt"
)

// Normalize collapses the two raw offer shapes into one tagged
// Itinerary. A non-empty return sequence decides round-trip; anything
// else is one-way over whichever segment list the record carries.
func Normalize(rec OfferRecord) Itinerary {
	if len(rec.ReturnSegments) > 0 {
		return Itinerary{
			ID:       rec.ID,
			Kind:     KindRoundTrip,
			Outbound: buildLeg(RoleOutbound, rec.OutboundSegments, rec.OutboundDuration),
			Return:   legPtr(buildLeg(RoleReturn, rec.ReturnSegments, rec.ReturnDuration)),
			Price:    rec.Price,
			Currency: rec.Currency,
		}
	}

	segments := rec.Segments
	hint := rec.Duration
	if len(segments) == 0 {
		// dual-leg record whose return side came back empty
		segments = rec.OutboundSegments
		hint = rec.OutboundDuration
	}

	return Itinerary{
		ID:       rec.ID,
		Kind:     KindOneWay,
		Outbound: buildLeg(RoleSingle, segments, hint),
		Price:    rec.Price,
		Currency: rec.Currency,
	}
}

// NormalizeAll maps a raw result page, dropping records with no
// segments at all since there is nothing to display for them.
func NormalizeAll(records []OfferRecord) []Itinerary {
	out := make([]Itinerary, 0, len(records))
	for _, rec := range records {
		it := Normalize(rec)
		if len(it.Outbound.Segments) == 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}

func buildLeg(role LegRole, segments []Segment, hint string) Leg {
	leg := Leg{
		Role:     role,
		Segments: segments,
	}
	if len(segments) == 0 {
		leg.StopLabel = stopLabel(0)
		leg.DurationDisplay = durfmt.Encode(0)
		return leg
	}

	leg.Origin = segments[0].Origin
	leg.Destination = segments[len(segments)-1].Destination
	leg.Stops = len(segments) - 1
	leg.StopLabel = stopLabel(leg.Stops)
	leg.DepartureAt = segments[0].DepartureAt
	leg.DurationMinutes = durfmt.LegDuration(segments, hint)
	leg.DurationDisplay = durfmt.Encode(leg.DurationMinutes)
	return leg
}

func stopLabel(stops int) string {
	switch stops {
	case 0:
		return "Direct"
	case 1:
		return "1 Stop"
	default:
		return fmt.Sprintf("%d Stops", stops)
	}
}

func legPtr(leg Leg) *Leg {
	return &leg
}
