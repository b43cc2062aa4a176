package lodging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"tripsearch/pkg/batch"
	"tripsearch/pkg/cache"
	"tripsearch/pkg/idgen"
	"tripsearch/pkg/logger"
)

// offerChunkSize bounds one upstream offers call. Larger ID sets are
// fetched chunk by chunk through a batch job.
const offerChunkSize = 50

// Client is the upstream hotel API collaborator.
type Client interface {
	ListHotelsByCity(ctx context.Context, cityCode string) ([]Hotel, error)
	FetchHotelOffers(ctx context.Context, hotelIDs []string, stay StayRequest) ([]HotelOffer, error)
}

// ResultSet is the committed outcome of exactly one city or stay
// search. Offers are only present in offers mode.
type ResultSet struct {
	Generation int64        `json:"generation"`
	CityCode   string       `json:"city_code"`
	Stay       StayRequest  `json:"stay"`
	Hotels     []Hotel      `json:"hotels"`
	Offers     []HotelOffer `json:"offers,omitempty"`
	Message    string       `json:"message,omitempty"`
	Partial    bool         `json:"partial"`
}

type Service struct {
	client  Client
	cache   cache.Cache
	ttl     time.Duration
	logger  logger.Client
	ids     idgen.Generator
	limiter *rate.Limiter

	mu        sync.Mutex
	mode      Mode
	city      string
	latestGen int64
	current   ResultSet
}

func NewService(client Client, cache cache.Cache, ids idgen.Generator,
	limiter *rate.Limiter, ttlMinutes int, logger logger.Client) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		ttl:     time.Duration(ttlMinutes) * time.Minute,
		logger:  logger,
		ids:     ids,
		limiter: limiter,
		mode:    ModeIdle,
	}
}

// SearchByCity loads the basic hotel list for a city. Any previously
// fetched offers are discarded; the mode machine reverts to the list.
func (s *Service) SearchByCity(ctx context.Context, city string) (*ViewResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(city))
	if code == "" {
		return nil, newValidationError([]string{"city"})
	}

	s.mu.Lock()
	s.mode = ModeListActive
	s.city = code
	s.latestGen = s.ids.NextID()
	gen := s.latestGen
	s.mu.Unlock()

	rs := ResultSet{Generation: gen, CityCode: code}

	hotels, err := s.listHotels(ctx, code)
	if err != nil {
		s.logger.Error("Hotel list fetch failed",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "city", Value: code},
		)
		rs.Hotels = []Hotel{}
		rs.Message = "hotel search is temporarily unavailable"
	} else {
		rs.Hotels = hotels
	}

	s.commit(rs)
	return s.View(), nil
}

// SearchOffers fetches priced offers for every hotel in the active
// list, chunked through a sequential batch job. Requires an active
// city; chunk failures keep the offers already retrieved.
func (s *Service) SearchOffers(ctx context.Context, form StayForm) (*ViewResponse, error) {
	stay, appErr := form.Validate()
	if appErr != nil {
		return nil, appErr
	}

	s.mu.Lock()
	if s.mode == ModeIdle {
		s.mu.Unlock()
		return nil, &AppError{
			Status:  http.StatusConflict,
			Code:    ErrorCodeConflict,
			Message: "no active city search",
		}
	}
	stay.CityCode = s.city
	hotels := s.current.Hotels
	s.mode = ModeOffersActive
	s.latestGen = s.ids.NextID()
	gen := s.latestGen
	s.mu.Unlock()

	ids := make([]string, 0, len(hotels))
	byID := make(map[string]Hotel, len(hotels))
	for _, h := range hotels {
		ids = append(ids, h.ID)
		byID[h.ID] = h
	}

	job := batch.New[HotelOffer](ids, offerChunkSize).WithLimiter(s.limiter)
	err := job.Run(ctx, func(ctx context.Context, chunk []string) ([]HotelOffer, error) {
		return s.client.FetchHotelOffers(ctx, chunk, stay)
	})
	if err != nil {
		s.logger.Error("Hotel offer batch stopped",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "status", Value: string(job.Status)},
			logger.Field{Key: "fetched", Value: len(job.Results)},
		)
	}

	rs := ResultSet{
		Generation: gen,
		CityCode:   stay.CityCode,
		Stay:       stay,
		Hotels:     hotels,
		Offers:     s.nameOffers(job.Results, byID),
		Partial:    job.Partial(),
	}
	switch job.Status {
	case batch.StatusPartial:
		rs.Message = "some hotel offers could not be retrieved"
	case batch.StatusFailed:
		rs.Offers = []HotelOffer{}
		rs.Message = "hotel offers are temporarily unavailable"
	}

	s.commit(rs)
	return s.View(), nil
}

// nameOffers backfills hotel names the offers endpoint omits from the
// active list.
func (s *Service) nameOffers(offers []HotelOffer, byID map[string]Hotel) []HotelOffer {
	named := make([]HotelOffer, len(offers))
	for i, offer := range offers {
		if offer.HotelName == "" {
			if h, ok := byID[offer.HotelID]; ok {
				offer.HotelName = h.Name
			}
		}
		named[i] = offer
	}
	return named
}

func (s *Service) listHotels(ctx context.Context, city string) ([]Hotel, error) {
	cacheKey := fmt.Sprintf("hotels:city:%s", city)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var hotels []Hotel
		if err := json.Unmarshal([]byte(cached), &hotels); err == nil {
			s.logger.Info("Cache hit for hotel list", logger.Field{Key: "cache_key", Value: cacheKey})
			return hotels, nil
		}
		s.logger.Error("Failed to unmarshal cached data", logger.Field{Key: "err", Value: err})
	}

	hotels, err := s.client.ListHotelsByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Cache miss for hotel list", logger.Field{Key: "cache_key", Value: cacheKey})

	hotelBytes, err := json.Marshal(hotels)
	if err != nil {
		s.logger.Error("Failed to marshal hotels for caching", logger.Field{Key: "err", Value: err})
		return hotels, nil
	}
	if err := s.cache.Set(ctx, cacheKey, string(hotelBytes), s.ttl); err != nil {
		s.logger.Error("Failed to cache hotel list", logger.Field{Key: "err", Value: err})
	}

	return hotels, nil
}

// commit installs a result set if its generation is still the latest.
func (s *Service) commit(rs ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rs.Generation != s.latestGen {
		s.logger.Info("Discarding stale hotel result",
			logger.Field{Key: "generation", Value: rs.Generation},
			logger.Field{Key: "city", Value: rs.CityCode},
		)
		return
	}
	s.current = rs
}

type ViewResponse struct {
	Mode        Mode         `json:"mode"`
	CityCode    string       `json:"city_code"`
	Stay        StayRequest  `json:"stay"`
	Generation  int64        `json:"generation"`
	Message     string       `json:"message,omitempty"`
	Partial     bool         `json:"partial"`
	TotalHotels int          `json:"total_hotels"`
	TotalOffers int          `json:"total_offers"`
	Hotels      []Hotel      `json:"hotels"`
	Offers      []HotelOffer `json:"offers,omitempty"`
}

// View returns the committed state. The slices are shared and must be
// treated read-only.
func (s *Service) View() *ViewResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &ViewResponse{
		Mode:        s.mode,
		CityCode:    s.city,
		Stay:        s.current.Stay,
		Generation:  s.current.Generation,
		Message:     s.current.Message,
		Partial:     s.current.Partial,
		TotalHotels: len(s.current.Hotels),
		TotalOffers: len(s.current.Offers),
		Hotels:      s.current.Hotels,
		Offers:      s.current.Offers,
	}
}
