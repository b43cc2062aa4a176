package durfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSegment struct {
	duration string
}

func (s fakeSegment) DurationEncoding() string { return s.duration }

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"iso hours and minutes", "PT5H30M", 330},
		{"iso hours only", "PT2H", 120},
		{"iso minutes only", "PT45M", 45},
		{"display form", "5:30h", 330},
		{"display form zero minutes", "2:00h", 120},
		{"loose form", "1h 45m", 105},
		{"loose minutes only", "50m", 50},
		{"empty", "", 0},
		{"garbage", "soon", 0},
		{"bare number is not a duration", "90", 0},
		{"whitespace", "  PT1H5M ", 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "2:05h", Encode(125))
	assert.Equal(t, "0:00h", Encode(0))
	assert.Equal(t, "0:00h", Encode(-10))
	assert.Equal(t, "26:00h", Encode(1560)) // hours unbounded
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 61, 125, 330, 1440, 3000} {
		assert.Equal(t, minutes, Decode(Encode(minutes)))
	}

	// re-encoding an already-canonical string is stable
	for _, s := range []string{"0:00h", "2:05h", "12:30h"} {
		assert.Equal(t, s, Encode(Decode(s)))
	}
}

func TestSumSegments(t *testing.T) {
	segs := []fakeSegment{{"PT1H30M"}, {"PT45M"}, {"bogus"}}
	assert.Equal(t, 135, SumSegments(segs))
	assert.Equal(t, 0, SumSegments([]fakeSegment{}))
}

func TestLegDuration(t *testing.T) {
	segs := []fakeSegment{{"PT1H"}, {"PT2H"}}

	assert.Equal(t, 330, LegDuration(segs, "PT5H30M"), "hint wins when present")
	assert.Equal(t, 180, LegDuration(segs, ""), "falls back to segment sum")
	assert.Equal(t, 180, LegDuration(segs, "   "), "blank hint is no hint")
}
