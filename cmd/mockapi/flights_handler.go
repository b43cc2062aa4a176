package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type FlightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

type FlightOffer struct {
	ID          string          `json:"id"`
	Itineraries []WireItinerary `json:"itineraries"`
	Price       WirePrice       `json:"price"`
}

type WireItinerary struct {
	Duration string        `json:"duration"`
	Segments []WireSegment `json:"segments"`
}

type WireSegment struct {
	Departure   WirePoint    `json:"departure"`
	Arrival     WirePoint    `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Duration    string       `json:"duration"`
	Aircraft    WireAircraft `json:"aircraft"`
}

type WirePoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type WireAircraft struct {
	Code string `json:"code"`
}

type WirePrice struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

type carrierOption struct {
	code     string
	number   string
	aircraft string
	priceMod float64
	stops    int
}

var carriers = []carrierOption{
	{"AF", "1321", "320", 1.00, 0},
	{"LH", "687", "32N", 1.15, 0},
	{"A3", "921", "321", 0.80, 1},
	{"TK", "785", "77W", 0.90, 1},
	{"BA", "165", "789", 1.25, 0},
	{"W6", "2514", "321", 0.60, 2},
}

func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := orDefault(q.Get("originLocationCode"), "TLV")
	destination := orDefault(q.Get("destinationLocationCode"), "CDG")
	departDate := orDefault(q.Get("departureDate"), time.Now().AddDate(0, 0, 10).Format("2006-01-02"))
	returnDate := q.Get("returnDate")

	resp := FlightOffersResponse{Data: make([]FlightOffer, 0, len(carriers))}
	basePrice := 180 + rand.Float64()*120

	for i, c := range carriers {
		outbound := buildItinerary(origin, destination, departDate, 6+i*2, c)

		offer := FlightOffer{
			ID:          fmt.Sprintf("OFF-%s-%d", c.code, i+1),
			Itineraries: []WireItinerary{outbound},
			Price: WirePrice{
				GrandTotal: fmt.Sprintf("%.2f", basePrice*c.priceMod),
				Currency:   "EUR",
			},
		}
		if returnDate != "" {
			offer.Itineraries = append(offer.Itineraries,
				buildItinerary(destination, origin, returnDate, 9+i, c))
			offer.Price.GrandTotal = fmt.Sprintf("%.2f", basePrice*c.priceMod*1.8)
		}
		// One offer per response ships without a price, the way some
		// upstream fare sources do.
		if i == len(carriers)-1 {
			offer.Price = WirePrice{}
		}

		resp.Data = append(resp.Data, offer)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func buildItinerary(origin, destination, date string, departHour int, c carrierOption) WireItinerary {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Now().AddDate(0, 0, 10)
	}
	depart := time.Date(day.Year(), day.Month(), day.Day(), departHour, 0, 0, 0, time.UTC)

	legMinutes := 250 + rand.Intn(120)
	if c.stops > 0 {
		legMinutes += 90 * c.stops
	}

	it := WireItinerary{
		Duration: isoDuration(legMinutes),
		Segments: make([]WireSegment, 0, c.stops+1),
	}

	vias := []string{"ATH", "VIE"}
	from := origin
	segStart := depart
	hops := c.stops + 1
	perHop := legMinutes / hops
	for hop := 0; hop < hops; hop++ {
		to := destination
		if hop < c.stops {
			to = vias[hop]
		}
		segEnd := segStart.Add(time.Duration(perHop) * time.Minute)

		seg := WireSegment{
			CarrierCode: c.code,
			Number:      c.number,
			Duration:    isoDuration(perHop),
			Aircraft:    WireAircraft{Code: c.aircraft},
		}
		seg.Departure = WirePoint{IataCode: from, At: segStart.Format("2006-01-02T15:04:05")}
		if hop == 0 {
			seg.Departure.Terminal = "3"
		}
		seg.Arrival = WirePoint{IataCode: to, At: segEnd.Format("2006-01-02T15:04:05")}
		it.Segments = append(it.Segments, seg)

		from = to
		segStart = segEnd.Add(45 * time.Minute) // layover
	}

	return it
}

func isoDuration(minutes int) string {
	return fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
