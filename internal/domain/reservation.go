package domain

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

type BillType string

const (
	BillReceipt BillType = "receipt"
	BillInvoice BillType = "invoice"
)

// Reservation is a confirmed booking as acknowledged by the booking service.
// Status transitions active -> cancelled exactly once; a cancelled
// reservation is never resurrected.
type Reservation struct {
	ID         int64
	RoomID     int64
	HotelID    int64
	HotelName  string
	HotelStars int

	FirstNight time.Time
	LastNight  time.Time
	GuestName  string
	Price      float64
	BillType   BillType
	TaxID      string
	Status     ReservationStatus

	Capacity        int
	PricePerNight   float64
	RoomFacilities  []string
	HotelFacilities []string
}

func (r Reservation) Nights() int {
	return int(r.LastNight.Sub(r.FirstNight).Hours() / 24)
}
