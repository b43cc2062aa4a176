package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(origin, destination, duration string, departure time.Time) Segment {
	return Segment{
		Origin:      origin,
		Destination: destination,
		DepartureAt: departure,
		ArrivalAt:   departure.Add(2 * time.Hour),
		Duration:    duration,
		CarrierCode: "LY",
		Number:      "331",
	}
}

func TestNormalize_OneWay(t *testing.T) {
	dep := time.Date(2026, 9, 11, 6, 30, 0, 0, time.UTC)
	price := 89.50
	rec := OfferRecord{
		ID:       "OF1",
		Segments: []Segment{seg("TLV", "ATH", "PT1H50M", dep), seg("ATH", "CDG", "PT3H10M", dep.Add(3*time.Hour))},
		Price:    &price,
		Currency: "USD",
	}

	it := Normalize(rec)

	assert.Equal(t, KindOneWay, it.Kind)
	assert.Nil(t, it.Return)
	assert.Equal(t, RoleSingle, it.Outbound.Role)
	assert.Equal(t, "TLV", it.Outbound.Origin)
	assert.Equal(t, "CDG", it.Outbound.Destination)
	assert.Equal(t, 1, it.Outbound.Stops)
	assert.Equal(t, "1 Stop", it.Outbound.StopLabel)
	assert.Equal(t, 300, it.Outbound.DurationMinutes, "no hint: sum of segments")
	assert.Equal(t, "5:00h", it.Outbound.DurationDisplay)
	assert.Equal(t, dep, it.Outbound.DepartureAt)
}

func TestNormalize_RoundTrip(t *testing.T) {
	dep := time.Date(2026, 9, 11, 6, 30, 0, 0, time.UTC)
	ret := dep.AddDate(0, 0, 5)
	price := 120.0
	rec := OfferRecord{
		ID:               "OF2",
		OutboundSegments: []Segment{seg("TLV", "CDG", "PT5H5M", dep)},
		ReturnSegments:   []Segment{seg("CDG", "TLV", "PT4H45M", ret)},
		OutboundDuration: "PT5H30M",
		Price:            &price,
		Currency:         "EUR",
	}

	it := Normalize(rec)

	assert.Equal(t, KindRoundTrip, it.Kind)
	require.NotNil(t, it.Return)
	assert.Equal(t, RoleOutbound, it.Outbound.Role)
	assert.Equal(t, RoleReturn, it.Return.Role)
	assert.Equal(t, 330, it.Outbound.DurationMinutes, "itinerary hint wins over segment sum")
	assert.Equal(t, 285, it.Return.DurationMinutes, "each leg falls back independently")
	assert.Equal(t, 615, it.TotalDurationMinutes())
	assert.Equal(t, "Direct", it.Outbound.StopLabel)
}

func TestNormalize_DualLegShapeWithEmptyReturnIsOneWay(t *testing.T) {
	dep := time.Date(2026, 9, 11, 6, 30, 0, 0, time.UTC)
	rec := OfferRecord{
		ID:               "OF3",
		OutboundSegments: []Segment{seg("TLV", "FCO", "PT3H", dep)},
	}

	it := Normalize(rec)

	assert.Equal(t, KindOneWay, it.Kind)
	assert.Nil(t, it.Return)
	assert.Equal(t, "FCO", it.Outbound.Destination)
	assert.Equal(t, 180, it.Outbound.DurationMinutes)
}

func TestNormalize_StopLabels(t *testing.T) {
	dep := time.Date(2026, 9, 11, 6, 30, 0, 0, time.UTC)
	tests := []struct {
		segments int
		stops    int
		label    string
	}{
		{1, 0, "Direct"},
		{2, 1, "1 Stop"},
		{3, 2, "2 Stops"},
	}

	for _, tt := range tests {
		segs := make([]Segment, tt.segments)
		for i := range segs {
			segs[i] = seg("AAA", "BBB", "PT1H", dep)
		}
		it := Normalize(OfferRecord{Segments: segs})
		assert.Equal(t, tt.stops, it.Outbound.Stops)
		assert.GreaterOrEqual(t, it.Outbound.Stops, 0)
		assert.Equal(t, tt.label, it.Outbound.StopLabel)
	}
}

func TestNormalizeAll_DropsEmptyRecords(t *testing.T) {
	dep := time.Date(2026, 9, 11, 6, 30, 0, 0, time.UTC)
	records := []OfferRecord{
		{ID: "empty"},
		{ID: "ok", Segments: []Segment{seg("TLV", "CDG", "PT5H", dep)}},
	}

	itins := NormalizeAll(records)

	require.Len(t, itins, 1)
	assert.Equal(t, "ok", itins[0].ID)
}

func TestPerTraveler(t *testing.T) {
	price := 120.0
	it := Itinerary{Price: &price}

	per := it.PerTraveler(2)
	require.NotNil(t, per)
	assert.Equal(t, 60.0, *per)

	assert.Nil(t, it.PerTraveler(1), "party of one shows total price unmodified")
	assert.Nil(t, Itinerary{}.PerTraveler(3), "no price, nothing to divide")

	// recomputation is idempotent
	again := it.PerTraveler(2)
	require.NotNil(t, again)
	assert.Equal(t, *per, *again)
}

func TestDirect(t *testing.T) {
	direct := Leg{Stops: 0}
	connecting := Leg{Stops: 1}

	assert.True(t, Itinerary{Kind: KindOneWay, Outbound: direct}.Direct())
	assert.False(t, Itinerary{Kind: KindOneWay, Outbound: connecting}.Direct())
	assert.True(t, Itinerary{Kind: KindRoundTrip, Outbound: direct, Return: &direct}.Direct())
	assert.False(t, Itinerary{Kind: KindRoundTrip, Outbound: direct, Return: &connecting}.Direct(),
		"round trip with one connecting leg is not direct")
	assert.False(t, Itinerary{Kind: KindRoundTrip, Outbound: connecting, Return: &direct}.Direct())
}
