package itinerary

import (
	"strings"

	"github.com/spf13/cast"
)

const (
	MinPartySize = 1
	MaxPartySize = 9
)

// AdvancedForm is the advanced-search submission as it arrives from
// the client. PartySize is loosely typed because the form control
// delivers either a string or a number.
type AdvancedForm struct {
	TripType    string `json:"trip_type"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"depart_date"`
	ReturnDate  string `json:"return_date"`
	PartySize   any    `json:"party_size"`
}

// Validate checks the form against its trip type and returns the
// SearchRequest to issue. On failure it names every invalid field and
// no request may be issued.
func (f AdvancedForm) Validate() (SearchRequest, *AppError) {
	var invalid []string

	tripType := TripType(strings.TrimSpace(f.TripType))
	switch tripType {
	case TripOneWay, TripRoundTrip:
	case "":
		tripType = TripRoundTrip
	default:
		invalid = append(invalid, "trip_type")
	}

	if strings.TrimSpace(f.Origin) == "" {
		invalid = append(invalid, "origin")
	}
	if strings.TrimSpace(f.Destination) == "" {
		invalid = append(invalid, "destination")
	}
	if strings.TrimSpace(f.DepartDate) == "" {
		invalid = append(invalid, "depart_date")
	}
	if tripType == TripRoundTrip && strings.TrimSpace(f.ReturnDate) == "" {
		invalid = append(invalid, "return_date")
	}

	partySize, err := cast.ToIntE(f.PartySize)
	if err != nil || partySize < MinPartySize || partySize > MaxPartySize {
		invalid = append(invalid, "party_size")
	}

	if len(invalid) > 0 {
		return SearchRequest{}, newValidationError(invalid)
	}

	req := SearchRequest{
		Mode:        ModeAdvanced,
		Origin:      strings.ToUpper(strings.TrimSpace(f.Origin)),
		Destination: strings.ToUpper(strings.TrimSpace(f.Destination)),
		DepartDate:  strings.TrimSpace(f.DepartDate),
		TripType:    tripType,
		PartySize:   partySize,
	}
	if tripType == TripRoundTrip {
		req.ReturnDate = strings.TrimSpace(f.ReturnDate)
	}
	return req, nil
}
