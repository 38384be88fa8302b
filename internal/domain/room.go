package domain

// RoomCandidate is a room returned by an availability search. Image URLs are
// empty until enrichment has run; after that the candidate is treated as
// immutable.
type RoomCandidate struct {
	RoomID        int64
	HotelID       int64
	HotelName     string
	Country       string
	City          string
	HotelStars    int
	Capacity      int
	PricePerNight float64
	TotalPrice    float64
	ImageURLs     []string
}
