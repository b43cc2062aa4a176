package offerclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cast"

	"tripsearch/internal/itinerary"
	"tripsearch/pkg/logger"
)

const segmentTimeLayout = "2006-01-02T15:04:05"

type flightOffersResponse struct {
	Data []flightOffer `json:"data"`
}

type flightOffer struct {
	ID          string `json:"id"`
	Itineraries []struct {
		Duration string        `json:"duration"` // compact ISO, e.g. PT5H30M
		Segments []wireSegment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
}

type wireSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		Terminal string `json:"terminal"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
	Duration    string `json:"duration"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
}

// SearchDefaultOffers runs the fixed-window search issued on a
// location change.
func (c *Client) SearchDefaultOffers(ctx context.Context, req itinerary.SearchRequest) ([]itinerary.OfferRecord, error) {
	return c.searchOffers(ctx, req)
}

// SearchAdvancedOffers runs a user-parameterized search. One-way
// requests omit the return date.
func (c *Client) SearchAdvancedOffers(ctx context.Context, req itinerary.SearchRequest) ([]itinerary.OfferRecord, error) {
	return c.searchOffers(ctx, req)
}

func (c *Client) searchOffers(ctx context.Context, req itinerary.SearchRequest) ([]itinerary.OfferRecord, error) {
	q := url.Values{}
	q.Set("originLocationCode", req.Origin)
	q.Set("destinationLocationCode", req.Destination)
	q.Set("departureDate", req.DepartDate)
	if req.TripType == itinerary.TripRoundTrip && req.ReturnDate != "" {
		q.Set("returnDate", req.ReturnDate)
	}
	q.Set("adults", fmt.Sprintf("%d", req.PartySize))

	var resp flightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("flight offer search failed: %w", err)
	}

	c.logger.Info("Fetched flight offers",
		logger.Field{Key: "mode", Value: string(req.Mode)},
		logger.Field{Key: "count", Value: len(resp.Data)},
	)
	return c.mapOffers(resp), nil
}

func (c *Client) mapOffers(resp flightOffersResponse) []itinerary.OfferRecord {
	records := make([]itinerary.OfferRecord, 0, len(resp.Data))

	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}

		rec := itinerary.OfferRecord{
			ID:       offer.ID,
			Currency: offer.Price.Currency,
		}

		// Upstream prices arrive as strings; an unparsable or
		// non-positive total leaves the offer priceless rather than
		// dropping it.
		if total, err := cast.ToFloat64E(offer.Price.GrandTotal); err == nil && total > 0 {
			rec.Price = &total
		}

		outbound := offer.Itineraries[0]
		if len(offer.Itineraries) >= 2 {
			ret := offer.Itineraries[1]
			rec.OutboundSegments = mapSegments(outbound.Segments)
			rec.ReturnSegments = mapSegments(ret.Segments)
			rec.OutboundDuration = outbound.Duration
			rec.ReturnDuration = ret.Duration
		} else {
			rec.Segments = mapSegments(outbound.Segments)
			rec.Duration = outbound.Duration
		}

		records = append(records, rec)
	}
	return records
}

func mapSegments(segs []wireSegment) []itinerary.Segment {
	mapped := make([]itinerary.Segment, 0, len(segs))
	for _, ws := range segs {
		departAt, _ := time.Parse(segmentTimeLayout, ws.Departure.At)
		arriveAt, _ := time.Parse(segmentTimeLayout, ws.Arrival.At)

		seg := itinerary.Segment{
			Origin:      ws.Departure.IataCode,
			Destination: ws.Arrival.IataCode,
			DepartureAt: departAt,
			ArrivalAt:   arriveAt,
			Duration:    ws.Duration,
			CarrierCode: ws.CarrierCode,
			Number:      ws.Number,
		}
		if ws.Departure.Terminal != "" {
			terminal := ws.Departure.Terminal
			seg.Terminal = &terminal
		}
		if ws.Aircraft.Code != "" {
			aircraft := ws.Aircraft.Code
			seg.Aircraft = &aircraft
		}
		mapped = append(mapped, seg)
	}
	return mapped
}
