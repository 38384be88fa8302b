package catalog

import (
	"context"

	"stayfinder/internal/domain"
)

// ReferenceAPI serves the picker lists and hotel details used to build a
// filter form and the offer map view.
type ReferenceAPI interface {
	Countries(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, country string) ([]string, error)
	RoomFacilities(ctx context.Context) ([]string, error)
	HotelFacilities(ctx context.Context) ([]string, error)
	Hotel(ctx context.Context, hotelID int64) (*domain.Hotel, error)
}
