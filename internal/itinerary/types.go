package itinerary

import (
	"fmt"
	"net/http"
	"time"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeConflict        ErrorCode = "CONFLICT"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Fields  []string
}

func (e *AppError) Error() string {
	return e.Message
}

func newValidationError(fields []string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Message: fmt.Sprintf("invalid fields: %v", fields),
		Fields:  fields,
	}
}

// Segment is one non-stop hop as received from the upstream API.
// Immutable once received.
type Segment struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"departure_at"`
	ArrivalAt   time.Time `json:"arrival_at"`
	Duration    string    `json:"duration"` // compact encoding, e.g. PT2H30M
	CarrierCode string    `json:"carrier_code"`
	Number      string    `json:"number"`
	Terminal    *string   `json:"terminal,omitempty"`
	Aircraft    *string   `json:"aircraft,omitempty"`
	CarrierLogo string    `json:"carrier_logo,omitempty"`
}

// DurationEncoding satisfies durfmt.Timed.
func (s Segment) DurationEncoding() string { return s.Duration }

// OfferRecord is the raw backend shape. Upstream sends either a single
// Segments sequence (one-way) or an outbound/return pair (round trip);
// the normalizer decides the kind once, downstream never probes.
type OfferRecord struct {
	ID               string    `json:"id"`
	Segments         []Segment `json:"segments,omitempty"`
	OutboundSegments []Segment `json:"outbound_segments,omitempty"`
	ReturnSegments   []Segment `json:"return_segments,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	Currency         string    `json:"currency,omitempty"`
	Duration         string    `json:"duration,omitempty"`
	OutboundDuration string    `json:"outbound_duration,omitempty"`
	ReturnDuration   string    `json:"return_duration,omitempty"`
}

type Kind string

const (
	KindOneWay    Kind = "one-way"
	KindRoundTrip Kind = "round-trip"
)

type LegRole string

const (
	RoleSingle   LegRole = "single"
	RoleOutbound LegRole = "outbound"
	RoleReturn   LegRole = "return"
)

// Leg is one directional portion of a normalized itinerary.
type Leg struct {
	Role            LegRole   `json:"role"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Stops           int       `json:"stops"`
	StopLabel       string    `json:"stop_label"`
	DurationMinutes int       `json:"duration_minutes"`
	DurationDisplay string    `json:"duration_display"`
	DepartureAt     time.Time `json:"departure_at"`
	Segments        []Segment `json:"segments"`
}

// Itinerary is the normalized, display-ready representation of one
// offer. Kind is the discriminant: round-trip always has Return set,
// one-way never does.
type Itinerary struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Outbound Leg      `json:"outbound"`
	Return   *Leg     `json:"return,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// TotalDurationMinutes sums all legs. This is the sort key for
// duration ordering.
func (it Itinerary) TotalDurationMinutes() int {
	total := it.Outbound.DurationMinutes
	switch it.Kind {
	case KindRoundTrip:
		if it.Return != nil {
			total += it.Return.DurationMinutes
		}
	case KindOneWay:
	}
	return total
}

// Direct reports whether the itinerary has no stops at all. A round
// trip with one direct leg and one connecting leg is not direct.
func (it Itinerary) Direct() bool {
	switch it.Kind {
	case KindOneWay:
		return it.Outbound.Stops == 0
	case KindRoundTrip:
		return it.Outbound.Stops == 0 && it.Return != nil && it.Return.Stops == 0
	}
	return false
}

// PerTraveler derives the per-traveler price. Only meaningful when the
// party has more than one traveler; recomputation is idempotent since
// nothing is stored back.
func (it Itinerary) PerTraveler(partySize int) *float64 {
	if it.Price == nil || partySize <= 1 {
		return nil
	}
	per := *it.Price / float64(partySize)
	return &per
}

type SearchMode string

const (
	ModeDefault  SearchMode = "default"
	ModeAdvanced SearchMode = "advanced"
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// SearchRequest is the immutable value describing one search
// invocation. Exactly one of these owns the displayed result set.
type SearchRequest struct {
	Mode        SearchMode `json:"mode"`
	Location    string     `json:"location"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	DepartDate  string     `json:"depart_date"`
	ReturnDate  string     `json:"return_date,omitempty"`
	TripType    TripType   `json:"trip_type"`
	PartySize   int        `json:"party_size"`
}

// ViewOptions select the client-side filter/sort over the current
// result set. Neither stage mutates the aggregated list.
type ViewOptions struct {
	DirectOnly bool   `json:"direct_only"`
	SortBy     string `json:"sort_by,omitempty"` // price, duration
}

const (
	SortByPrice    = "price"
	SortByDuration = "duration"
)
