package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
)

type HotelListResponse struct {
	Data []HotelListing `json:"data"`
}

type HotelListing struct {
	HotelID  string       `json:"hotelId"`
	Name     string       `json:"name"`
	CityCode string       `json:"cityCode"`
	Rating   string       `json:"rating"`
	Address  HotelAddress `json:"address"`
}

type HotelAddress struct {
	CityName string `json:"cityName"`
}

type HotelOffersResponse struct {
	Data []HotelOfferItem `json:"data"`
}

type HotelOfferItem struct {
	Hotel     HotelRef    `json:"hotel"`
	Available bool        `json:"available"`
	Offers    []StayOffer `json:"offers"`
}

type HotelRef struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
}

type StayOffer struct {
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	Room         StayRoom  `json:"room"`
	Price        StayPrice `json:"price"`
}

type StayRoom struct {
	Description   RoomDescription `json:"description"`
	TypeEstimated RoomType        `json:"typeEstimated"`
}

type RoomDescription struct {
	Text string `json:"text"`
}

type RoomType struct {
	Beds    int    `json:"beds"`
	BedType string `json:"bedType"`
}

type StayPrice struct {
	Base     string `json:"base"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

var hotelNames = []string{
	"Grand Palace Hotel",
	"Central Boutique Residence",
	"Riverside Inn",
	"Old Town Suites",
	"Skyline Business Hotel",
	"Garden Court Hotel",
	"Station Square Lodge",
	"Harbour View Hotel",
}

func HotelListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cityCode := orDefault(r.URL.Query().Get("cityCode"), "PAR")

	resp := HotelListResponse{Data: make([]HotelListing, 0, len(hotelNames))}
	for i, name := range hotelNames {
		resp.Data = append(resp.Data, HotelListing{
			HotelID:  fmt.Sprintf("HTL%s%03d", cityCode, i+1),
			Name:     name,
			CityCode: cityCode,
			Rating:   fmt.Sprintf("%d", 3+i%3),
			Address:  HotelAddress{CityName: cityCode},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func HotelOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	ids := strings.Split(q.Get("hotelIds"), ",")
	checkIn := orDefault(q.Get("checkInDate"), "2026-09-20")
	checkOut := orDefault(q.Get("checkOutDate"), "2026-09-24")

	resp := HotelOffersResponse{Data: make([]HotelOfferItem, 0, len(ids))}
	for i, id := range ids {
		if id == "" {
			continue
		}

		base := 60 + rand.Float64()*180
		item := HotelOfferItem{
			Hotel: HotelRef{
				HotelID:  id,
				Name:     hotelNames[i%len(hotelNames)],
				CityCode: cityFromID(id),
			},
			Available: i%7 != 6, // the occasional sold-out property
			Offers: []StayOffer{{
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				Room: StayRoom{
					Description:   RoomDescription{Text: "Standard double room"},
					TypeEstimated: RoomType{Beds: 1, BedType: "DOUBLE"},
				},
				Price: StayPrice{
					Base:     fmt.Sprintf("%.2f", base),
					Total:    fmt.Sprintf("%.2f", base*1.2),
					Currency: "USD",
				},
			}},
		}
		resp.Data = append(resp.Data, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// cityFromID recovers the city code embedded by the list handler,
// e.g. HTLPAR001 -> PAR.
func cityFromID(id string) string {
	if len(id) >= 6 && strings.HasPrefix(id, "HTL") {
		return id[3:6]
	}
	return "XXX"
}
