package lodging

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	MinGuests = 1
	MaxGuests = 9

	stayDateLayout = "2006-01-02"
)

// StayForm is the hotel offer-search submission as it arrives from the
// client. Adults is loosely typed because the form control delivers
// either a string or a number.
type StayForm struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   any    `json:"adults"`
}

// Validate checks the stay window and guest count. On failure it names
// every invalid field and no request may be issued. The city is filled
// in later from the active list search.
func (f StayForm) Validate() (StayRequest, *AppError) {
	var invalid []string

	checkIn, errIn := time.Parse(stayDateLayout, strings.TrimSpace(f.CheckIn))
	if errIn != nil {
		invalid = append(invalid, "check_in")
	}
	checkOut, errOut := time.Parse(stayDateLayout, strings.TrimSpace(f.CheckOut))
	if errOut != nil {
		invalid = append(invalid, "check_out")
	}
	if errIn == nil && errOut == nil && !checkOut.After(checkIn) {
		invalid = append(invalid, "check_out")
	}

	adults, err := cast.ToIntE(f.Adults)
	if err != nil || adults < MinGuests || adults > MaxGuests {
		invalid = append(invalid, "adults")
	}

	if len(invalid) > 0 {
		return StayRequest{}, newValidationError(invalid)
	}

	return StayRequest{
		CheckIn:  strings.TrimSpace(f.CheckIn),
		CheckOut: strings.TrimSpace(f.CheckOut),
		Adults:   adults,
	}, nil
}
