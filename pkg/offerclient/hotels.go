package offerclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"tripsearch/internal/lodging"
	"tripsearch/pkg/logger"
)

type hotelListResponse struct {
	Data []struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		CityCode string `json:"cityCode"`
		Rating   string `json:"rating"`
		Address  struct {
			CityName string `json:"cityName"`
		} `json:"address"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			CheckInDate  string `json:"checkInDate"`
			CheckOutDate string `json:"checkOutDate"`
			Room         struct {
				Description struct {
					Text string `json:"text"`
				} `json:"description"`
				TypeEstimated struct {
					Beds    int    `json:"beds"`
					BedType string `json:"bedType"`
				} `json:"typeEstimated"`
			} `json:"room"`
			Price struct {
				Base     string `json:"base"`
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

// ListHotelsByCity returns the unpriced property list for a city.
func (c *Client) ListHotelsByCity(ctx context.Context, cityCode string) ([]lodging.Hotel, error) {
	q := url.Values{}
	q.Set("cityCode", cityCode)

	var resp hotelListResponse
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	hotels := make([]lodging.Hotel, 0, len(resp.Data))
	for _, h := range resp.Data {
		rating, _ := cast.ToFloat64E(h.Rating)
		hotels = append(hotels, lodging.Hotel{
			ID:       h.HotelID,
			Name:     h.Name,
			CityCode: h.CityCode,
			Area:     h.Address.CityName,
			Rating:   rating,
		})
	}

	c.logger.Info("Fetched hotel list",
		logger.Field{Key: "city", Value: cityCode},
		logger.Field{Key: "count", Value: len(hotels)},
	)
	return hotels, nil
}

// FetchHotelOffers returns priced offers for one chunk of hotel IDs.
// Chunking is the caller's concern.
func (c *Client) FetchHotelOffers(ctx context.Context, hotelIDs []string, stay lodging.StayRequest) ([]lodging.HotelOffer, error) {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(hotelIDs, ","))
	q.Set("checkInDate", stay.CheckIn)
	q.Set("checkOutDate", stay.CheckOut)
	q.Set("adults", fmt.Sprintf("%d", stay.Adults))

	var resp hotelOffersResponse
	if err := c.get(ctx, "/v3/shopping/hotel-offers?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	offers := make([]lodging.HotelOffer, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}
		best := item.Offers[0]

		base, _ := cast.ToFloat64E(best.Price.Base)
		total, err := cast.ToFloat64E(best.Price.Total)
		if err != nil || total <= 0 {
			continue
		}

		offers = append(offers, lodging.HotelOffer{
			HotelID:    item.Hotel.HotelID,
			HotelName:  item.Hotel.Name,
			CityCode:   item.Hotel.CityCode,
			CheckIn:    best.CheckInDate,
			CheckOut:   best.CheckOutDate,
			BasePrice:  base,
			TotalPrice: total,
			Currency:   best.Price.Currency,
			Room: lodging.Room{
				Description: best.Room.Description.Text,
				Beds:        best.Room.TypeEstimated.Beds,
				BedType:     best.Room.TypeEstimated.BedType,
			},
		})
	}
	return offers, nil
}
