package itinerary

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"tripsearch/pkg/idgen"
)

type Mode string

const (
	ModeIdle           Mode = "idle"
	ModeDefaultActive  Mode = "default-search-active"
	ModeAdvancedActive Mode = "advanced-search-active"
)

// Default-search window: fixed origin and date offsets, single traveler.
const (
	defaultOrigin    = "TLV"
	departOffsetDays = 10
	returnOffsetDays = 15
	defaultPartySize = 1
	searchDateLayout = "2006-01-02"
)

// ResultSet is the committed outcome of exactly one SearchRequest.
type ResultSet struct {
	Generation  int64         `json:"generation"`
	Request     SearchRequest `json:"request"`
	Itineraries []Itinerary   `json:"itineraries"`
	Message     string        `json:"message,omitempty"`
	Partial     bool          `json:"partial"`
}

// Controller owns which search the visible result set belongs to.
// Every Begin* bumps the generation token; Commit drops anything
// carrying an older token, so a slow response for a superseded search
// can never overwrite a newer one.
type Controller struct {
	mu        sync.Mutex
	ids       idgen.Generator
	now       func() time.Time
	mode      Mode
	location  string
	latestGen int64
	current   ResultSet
}

func NewController(ids idgen.Generator) *Controller {
	return &Controller{
		ids:  ids,
		now:  time.Now,
		mode: ModeIdle,
	}
}

// BeginDefault handles a location change. From any state it moves to
// default-search-active for the new location, except that a repeat of
// the location currently under an advanced search is suppressed (the
// advanced result set stays visible). Returns false when no fetch
// should be issued.
func (c *Controller) BeginDefault(location string) (SearchRequest, int64, bool) {
	loc := strings.ToUpper(strings.TrimSpace(location))
	if loc == "" {
		return SearchRequest{}, 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeAdvancedActive && loc == c.location {
		return SearchRequest{}, 0, false
	}

	c.mode = ModeDefaultActive
	c.location = loc
	c.latestGen = c.ids.NextID()

	now := c.now()
	req := SearchRequest{
		Mode:        ModeDefault,
		Location:    loc,
		Origin:      defaultOrigin,
		Destination: loc,
		DepartDate:  now.AddDate(0, 0, departOffsetDays).Format(searchDateLayout),
		ReturnDate:  now.AddDate(0, 0, returnOffsetDays).Format(searchDateLayout),
		TripType:    TripRoundTrip,
		PartySize:   defaultPartySize,
	}
	return req, c.latestGen, true
}

// BeginAdvanced handles an advanced-form submission for the location
// currently displayed. Validation failures leave the machine in its
// current state and issue no request.
func (c *Controller) BeginAdvanced(form AdvancedForm) (SearchRequest, int64, *AppError) {
	req, appErr := form.Validate()
	if appErr != nil {
		return SearchRequest{}, 0, appErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeIdle {
		return SearchRequest{}, 0, &AppError{
			Status:  http.StatusConflict,
			Code:    ErrorCodeConflict,
			Message: "no active location search",
		}
	}

	req.Location = c.location
	c.mode = ModeAdvancedActive
	c.latestGen = c.ids.NextID()
	return req, c.latestGen, nil
}

// Commit installs a result set if its generation is still the latest.
// A stale commit is dropped and reported as false.
func (c *Controller) Commit(rs ResultSet) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rs.Generation != c.latestGen {
		return false
	}
	c.current = rs
	return true
}

// Snapshot returns the current mode, location and committed result
// set. The itinerary slice is shared and must be treated read-only.
func (c *Controller) Snapshot() (Mode, string, ResultSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode, c.location, c.current
}
