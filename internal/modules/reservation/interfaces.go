package reservation

import (
	"context"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

// BookingAPI is the slice of the booking service this module talks to.
type BookingAPI interface {
	CreateReservation(ctx context.Context, token string, req backend.ReservationRequest) error
	UserReservations(ctx context.Context, token string, userID int64, status domain.ReservationStatus) ([]domain.Reservation, error)
	CancelReservation(ctx context.Context, token string, reservationID, userID int64) error
}

// CacheRepository holds the locally cached active-reservation list. The
// lifecycle service is its single writer. ReplaceForUser is the normal sync
// path; Insert and RemoveByID patch the cache when a post-mutation refetch
// fails, so the local list still reflects the acknowledged change.
type CacheRepository interface {
	ReplaceForUser(ctx context.Context, userID int64, items []domain.Reservation) error
	ActiveForUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	Insert(ctx context.Context, userID int64, item domain.Reservation) error
	RemoveByID(ctx context.Context, userID, reservationID int64) error
}
