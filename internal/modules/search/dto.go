package search

import "time"

// RawFilterForm is the filter panel exactly as the client typed it: all
// fields are strings (or string lists) and nothing is validated yet.
type RawFilterForm struct {
	CheckIn         string   `json:"check_in"`
	CheckOut        string   `json:"check_out"`
	Guests          string   `json:"guests"`
	MinPrice        string   `json:"min_price"`
	MaxPrice        string   `json:"max_price"`
	MinStars        string   `json:"min_stars"`
	MaxStars        string   `json:"max_stars"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	RoomFacilities  []string `json:"room_facilities"`
	HotelFacilities []string `json:"hotel_facilities"`
	SortBy          string   `json:"sort_by"`
	SortOrder       string   `json:"sort_order"`
}

// Criteria is a validated, normalized availability query. Nil range bounds
// mean open-ended; empty Country/City mean unconstrained.
type Criteria struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int

	MinPrice *float64
	MaxPrice *float64
	MinStars *int
	MaxStars *int

	Country string
	City    string

	RoomFacilities  []string
	HotelFacilities []string

	SortBy    string
	SortOrder string
}

func (c Criteria) Nights() int {
	return int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
}

type SearchResult struct {
	Rooms  []RoomView `json:"available_rooms"`
	Nights int        `json:"nights"`
}

type RoomView struct {
	RoomID        int64    `json:"id_room"`
	HotelID       int64    `json:"id_hotel"`
	HotelName     string   `json:"hotel_name"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	HotelStars    int      `json:"hotel_stars"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	TotalPrice    float64  `json:"total_price"`
	ImageURLs     []string `json:"image_urls"`
}
