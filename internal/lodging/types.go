package lodging

import (
	"fmt"
	"net/http"
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

// Hotel is one property from the city list endpoint. The list carries
// no pricing; prices only exist on offers.
type Hotel struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	CityCode string  `json:"city_code"`
	Area     string  `json:"area,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}

type Room struct {
	Description string `json:"description"`
	Beds        int    `json:"beds,omitempty"`
	BedType     string `json:"bed_type,omitempty"`
}

// HotelOffer is one bookable stay returned by the offers endpoint.
type HotelOffer struct {
	HotelID    string  `json:"hotel_id"`
	HotelName  string  `json:"hotel_name"`
	CityCode   string  `json:"city_code"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	BasePrice  float64 `json:"base_price"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
	Room       Room    `json:"room"`
}

// StayRequest is the immutable value describing one offer retrieval.
type StayRequest struct {
	CityCode string `json:"city_code"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
}

type Mode string

const (
	ModeIdle         Mode = "idle"
	ModeListActive   Mode = "list-active"
	ModeOffersActive Mode = "offers-active"
)
