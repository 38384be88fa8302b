package enrich

import "context"

// ImageSource resolves the image URLs for one hotel.
type ImageSource interface {
	HotelImages(ctx context.Context, hotelID int64) ([]string, error)
}
