package durfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Upstream sends durations in the compact ISO-8601 style ("PT5H30M"),
// older records carry the loose "5h 30m" form, and our own display
// strings use "5:30h". Decode accepts all three so re-decoding a
// rendered value round-trips.
var (
	isoPattern   = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)
	clockPattern = regexp.MustCompile(`^(\d+):(\d{1,2})H?$`)
	loosePattern = regexp.MustCompile(`^(?:(\d+)H)?\s*(?:(\d+)M)?$`)
)

// Decode parses a compact hours-and-minutes encoding into total minutes.
// A missing hour or minute component counts as 0. Unrecognized input
// yields 0 minutes; decoding never fails.
func Decode(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	for _, p := range []*regexp.Regexp{isoPattern, clockPattern, loosePattern} {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if m[1] == "" && m[2] == "" {
			continue
		}
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes
	}

	return 0
}

// Encode formats minutes as "H:MMh". Hours are unbounded, minutes
// zero-padded to two digits.
func Encode(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02dh", minutes/60, minutes%60)
}

// Timed is any record carrying its own duration encoding.
type Timed interface {
	DurationEncoding() string
}

// SumSegments sums Decode over each segment's duration field.
func SumSegments[T Timed](segments []T) int {
	total := 0
	for _, seg := range segments {
		total += Decode(seg.DurationEncoding())
	}
	return total
}

// LegDuration returns the decoded hint when one is supplied, otherwise
// the sum of the segment durations. Every duration shown or sorted on
// goes through here so hinted and unhinted records order consistently.
func LegDuration[T Timed](segments []T, hint string) int {
	if strings.TrimSpace(hint) != "" {
		return Decode(hint)
	}
	return SumSegments(segments)
}
