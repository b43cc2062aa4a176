package itinerary

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"tripsearch/pkg/cache"
	"tripsearch/pkg/idgen"
	"tripsearch/pkg/logger"
)

// OffersClient is the upstream collaborator. Any non-success result is
// recoverable: the service converts it to controller state and never
// lets it escape toward the presentation layer.
type OffersClient interface {
	SearchDefaultOffers(ctx context.Context, req SearchRequest) ([]OfferRecord, error)
	SearchAdvancedOffers(ctx context.Context, req SearchRequest) ([]OfferRecord, error)
}

// Resolver maps location codes to display names. Advisory only.
type Resolver interface {
	Resolve(code string) string
}

type Service struct {
	client     OffersClient
	cache      cache.Cache
	ttl        time.Duration
	logger     logger.Client
	resolver   Resolver
	controller *Controller
}

func NewService(client OffersClient, cache cache.Cache, resolver Resolver,
	ids idgen.Generator, ttlMinutes int, logger logger.Client) *Service {
	return &Service{
		client:     client,
		cache:      cache,
		ttl:        time.Duration(ttlMinutes) * time.Minute,
		logger:     logger,
		resolver:   resolver,
		controller: NewController(ids),
	}
}

// SearchByLocation runs the default, fixed-window search for a new
// location. While an advanced search is active for the same location
// the default fetch is suppressed and the current view is returned.
func (s *Service) SearchByLocation(ctx context.Context, location string) (*ViewResponse, error) {
	req, gen, ok := s.controller.BeginDefault(location)
	if !ok {
		if location == "" {
			return nil, newValidationError([]string{"location"})
		}
		return s.View(ViewOptions{}), nil
	}

	rs := s.run(ctx, req, gen)
	if !s.controller.Commit(rs) {
		s.logger.Info("Discarding stale search result",
			logger.Field{Key: "generation", Value: rs.Generation},
			logger.Field{Key: "location", Value: req.Location},
		)
	}
	return s.View(ViewOptions{}), nil
}

// SearchAdvanced runs a user-parameterized search over the location
// currently displayed. Validation failures issue no request.
func (s *Service) SearchAdvanced(ctx context.Context, form AdvancedForm) (*ViewResponse, error) {
	req, gen, appErr := s.controller.BeginAdvanced(form)
	if appErr != nil {
		return nil, appErr
	}

	rs := s.run(ctx, req, gen)
	if !s.controller.Commit(rs) {
		s.logger.Info("Discarding stale search result",
			logger.Field{Key: "generation", Value: rs.Generation},
			logger.Field{Key: "location", Value: req.Location},
		)
	}
	return s.View(ViewOptions{}), nil
}

// run fetches and normalizes one search. Failures come back as an
// empty result set with a message, never as an error.
func (s *Service) run(ctx context.Context, req SearchRequest, gen int64) ResultSet {
	rs := ResultSet{
		Generation: gen,
		Request:    req,
	}

	records, err := s.fetch(ctx, req)
	if err != nil {
		s.logger.Error("Offer search failed",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "mode", Value: string(req.Mode)},
			logger.Field{Key: "location", Value: req.Location},
		)
		rs.Itineraries = []Itinerary{}
		rs.Message = "offer search is temporarily unavailable"
		return rs
	}

	rs.Itineraries = NormalizeAll(records)
	return rs
}

func (s *Service) fetch(ctx context.Context, req SearchRequest) ([]OfferRecord, error) {
	cacheKey := s.generateCacheKey(req)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var records []OfferRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			s.logger.Info("Cache hit for search", logger.Field{Key: "cache_key", Value: cacheKey})
			return records, nil
		}
		s.logger.Error("Failed to unmarshal cached data", logger.Field{Key: "err", Value: err})
	}

	startTime := time.Now()
	var records []OfferRecord
	switch req.Mode {
	case ModeAdvanced:
		records, err = s.client.SearchAdvancedOffers(ctx, req)
	default:
		records, err = s.client.SearchDefaultOffers(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cache miss for search",
		logger.Field{Key: "cache_key", Value: cacheKey},
		logger.Field{Key: "search_time_ms", Value: time.Since(startTime).Milliseconds()},
	)

	recordBytes, err := json.Marshal(records)
	if err != nil {
		s.logger.Error("Failed to marshal records for caching", logger.Field{Key: "err", Value: err})
		return records, nil // return records even if caching fails
	}
	if err := s.cache.Set(ctx, cacheKey, string(recordBytes), s.ttl); err != nil {
		s.logger.Error("Failed to cache search results", logger.Field{Key: "err", Value: err})
	}

	return records, nil
}

// generateCacheKey creates a deterministic key from search parameters
func (s *Service) generateCacheKey(req SearchRequest) string {
	key := fmt.Sprintf("offers:%s:%s:%s:%s:%s:%s:%d",
		req.Mode,
		req.Origin,
		req.Destination,
		req.DepartDate,
		req.ReturnDate,
		req.TripType,
		req.PartySize,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("offers:search:%x", hash[:16])
}

// ItineraryView adds the render-time derivations the stored result set
// deliberately leaves out.
type ItineraryView struct {
	Itinerary
	PerTravelerPrice *float64 `json:"per_traveler_price,omitempty"`
}

type ViewResponse struct {
	Mode         Mode              `json:"mode"`
	Location     string            `json:"location"`
	Request      SearchRequest     `json:"request"`
	Generation   int64             `json:"generation"`
	Message      string            `json:"message,omitempty"`
	Partial      bool              `json:"partial"`
	TotalResults int               `json:"total_results"`
	Locations    map[string]string `json:"locations"`
	Itineraries  []ItineraryView   `json:"itineraries"`
}

// View applies the filter and sort stages over the committed result
// set and derives display fields. The stored set is never mutated.
func (s *Service) View(opts ViewOptions) *ViewResponse {
	mode, location, rs := s.controller.Snapshot()

	itins := applyFilters(rs.Itineraries, opts)
	itins = s.applySorting(itins, opts)

	views := make([]ItineraryView, 0, len(itins))
	locations := make(map[string]string)
	for _, it := range itins {
		views = append(views, ItineraryView{
			Itinerary:        it,
			PerTravelerPrice: it.PerTraveler(rs.Request.PartySize),
		})
		s.collectNames(locations, it)
	}

	return &ViewResponse{
		Mode:         mode,
		Location:     location,
		Request:      rs.Request,
		Generation:   rs.Generation,
		Message:      rs.Message,
		Partial:      rs.Partial,
		TotalResults: len(views),
		Locations:    locations,
		Itineraries:  views,
	}
}

func (s *Service) collectNames(locations map[string]string, it Itinerary) {
	legs := []*Leg{&it.Outbound}
	if it.Kind == KindRoundTrip && it.Return != nil {
		legs = append(legs, it.Return)
	}
	for _, leg := range legs {
		codes := []string{leg.Origin, leg.Destination}
		for _, seg := range leg.Segments {
			// connection points show up in the stop details
			codes = append(codes, seg.Origin, seg.Destination)
		}
		for _, code := range codes {
			if code == "" {
				continue
			}
			if _, seen := locations[code]; !seen {
				locations[code] = s.resolver.Resolve(code)
			}
		}
	}
}
