package itinerary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripsearch/pkg/logger"
)

func ptr(f float64) *float64 { return &f }

func oneWay(id string, stops, minutes int, price *float64) Itinerary {
	return Itinerary{
		ID:       id,
		Kind:     KindOneWay,
		Outbound: Leg{Role: RoleSingle, Stops: stops, DurationMinutes: minutes},
		Price:    price,
	}
}

func roundTrip(id string, outStops, retStops, outMinutes, retMinutes int, price *float64) Itinerary {
	return Itinerary{
		ID:       id,
		Kind:     KindRoundTrip,
		Outbound: Leg{Role: RoleOutbound, Stops: outStops, DurationMinutes: outMinutes},
		Return:   &Leg{Role: RoleReturn, Stops: retStops, DurationMinutes: retMinutes},
		Price:    price,
	}
}

func ids(itins []Itinerary) []string {
	out := make([]string, len(itins))
	for i, it := range itins {
		out[i] = it.ID
	}
	return out
}

func TestApplyFilters_DirectOnly(t *testing.T) {
	itins := []Itinerary{
		oneWay("ow-direct", 0, 100, nil),
		oneWay("ow-1stop", 1, 100, nil),
		roundTrip("rt-both-direct", 0, 0, 100, 100, nil),
		roundTrip("rt-return-connects", 0, 1, 100, 100, nil),
		roundTrip("rt-outbound-connects", 1, 0, 100, 100, nil),
	}

	filtered := applyFilters(itins, ViewOptions{DirectOnly: true})
	assert.Equal(t, []string{"ow-direct", "rt-both-direct"}, ids(filtered))

	// off: everything passes, same backing data untouched
	assert.Len(t, applyFilters(itins, ViewOptions{}), 5)
	assert.Len(t, itins, 5)
}

func testService() (*Service, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Service{logger: logger.NewWithWriter("development", buf)}, buf
}

func TestApplySorting_ByPrice(t *testing.T) {
	s, _ := testService()
	itins := []Itinerary{
		oneWay("pricey", 0, 100, ptr(300)),
		oneWay("no-price-a", 0, 100, nil),
		oneWay("cheap", 0, 100, ptr(99.5)),
		oneWay("no-price-b", 0, 100, nil),
		oneWay("mid", 0, 100, ptr(150)),
	}

	sorted := s.applySorting(itins, ViewOptions{SortBy: SortByPrice})

	assert.Equal(t, []string{"cheap", "mid", "pricey", "no-price-a", "no-price-b"}, ids(sorted),
		"priceless records sort last, stable among themselves")
	assert.Equal(t, "pricey", itins[0].ID, "input order untouched")
}

func TestApplySorting_ByTotalDuration(t *testing.T) {
	s, _ := testService()
	itins := []Itinerary{
		roundTrip("long", 0, 0, 400, 350, nil),
		oneWay("short", 0, 120, nil),
		roundTrip("medium", 0, 0, 100, 90, nil),
	}

	sorted := s.applySorting(itins, ViewOptions{SortBy: SortByDuration})

	assert.Equal(t, []string{"short", "medium", "long"}, ids(sorted))
}

func TestApplySorting_InvalidKeyLeavesOrder(t *testing.T) {
	s, buf := testService()
	itins := []Itinerary{
		oneWay("b", 0, 200, ptr(2)),
		oneWay("a", 0, 100, ptr(1)),
	}

	sorted := s.applySorting(itins, ViewOptions{SortBy: "altitude"})

	assert.Equal(t, []string{"b", "a"}, ids(sorted))
	assert.Contains(t, buf.String(), "invalid_sort_criteria")
}

func TestFilterThenSortCompose(t *testing.T) {
	s, _ := testService()
	itins := []Itinerary{
		oneWay("connecting-cheap", 1, 100, ptr(50)),
		oneWay("direct-pricey", 0, 100, ptr(200)),
		oneWay("direct-cheap", 0, 100, ptr(80)),
	}

	filtered := applyFilters(itins, ViewOptions{DirectOnly: true})
	sorted := s.applySorting(filtered, ViewOptions{SortBy: SortByPrice})

	assert.Equal(t, []string{"direct-cheap", "direct-pricey"}, ids(sorted))
	require.Len(t, itins, 3, "aggregated list remains recoverable")
}
