package reservation

import "stayfinder/internal/domain"

type CreateReservationRequest struct {
	RoomID     int64  `json:"id_room" binding:"required"`
	FirstNight string `json:"first_night" binding:"required"`
	LastNight  string `json:"last_night" binding:"required"`
	GuestName  string `json:"full_name"`
	BillType   string `json:"bill_type" binding:"required"`
	TaxID      string `json:"tax_id"`
}

type ReservationView struct {
	ID              int64    `json:"id_reservation"`
	FirstNight      string   `json:"first_night"`
	LastNight       string   `json:"last_night"`
	GuestName       string   `json:"full_name"`
	Price           float64  `json:"price"`
	BillType        string   `json:"bill_type"`
	Status          string   `json:"status"`
	RoomID          int64    `json:"id_room"`
	Capacity        int      `json:"capacity"`
	PricePerNight   float64  `json:"price_per_night"`
	RoomFacilities  []string `json:"room_facilities"`
	HotelID         int64    `json:"id_hotel"`
	HotelName       string   `json:"hotel_name"`
	HotelStars      int      `json:"hotel_stars"`
	HotelFacilities []string `json:"hotel_facilities"`
}

func viewFromDomain(r domain.Reservation) ReservationView {
	return ReservationView{
		ID:              r.ID,
		FirstNight:      r.FirstNight.Format(dateFormat),
		LastNight:       r.LastNight.Format(dateFormat),
		GuestName:       r.GuestName,
		Price:           r.Price,
		BillType:        string(r.BillType),
		Status:          string(r.Status),
		RoomID:          r.RoomID,
		Capacity:        r.Capacity,
		PricePerNight:   r.PricePerNight,
		RoomFacilities:  r.RoomFacilities,
		HotelID:         r.HotelID,
		HotelName:       r.HotelName,
		HotelStars:      r.HotelStars,
		HotelFacilities: r.HotelFacilities,
	}
}
