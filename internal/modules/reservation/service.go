package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

const dateFormat = "2006-01-02"

// Service drives the reservation lifecycle: none -> active -> cancelled.
// The server's acknowledgement is authoritative; the local cache is only
// mutated after it, and always by wholesale replacement so stale entries
// can never resurface.
type Service struct {
	api    BookingAPI
	cache  CacheRepository
	logger *logrus.Logger
}

func NewService(api BookingAPI, cache CacheRepository, logger *logrus.Logger) *Service {
	return &Service{api: api, cache: cache, logger: logger}
}

// Create validates preconditions client-side, dispatches the reservation
// and returns the server-acknowledged active reservation. The service
// re-validates independently; its rejection wins.
func (s *Service) Create(ctx context.Context, session *domain.Session, req CreateReservationRequest) (*domain.Reservation, error) {
	if req.GuestName == "" {
		return nil, ErrGuestNameRequired
	}

	billType := domain.BillType(req.BillType)
	if billType != domain.BillReceipt && billType != domain.BillInvoice {
		return nil, ErrBadBillType
	}
	// Explicit enum comparison: the tax id travels iff billing is invoice.
	if billType == domain.BillInvoice && req.TaxID == "" {
		return nil, ErrTaxIDRequired
	}

	first, err := time.Parse(dateFormat, req.FirstNight)
	if err != nil {
		return nil, ErrBadStayInterval
	}
	last, err := time.Parse(dateFormat, req.LastNight)
	if err != nil {
		return nil, ErrBadStayInterval
	}
	if !first.Before(last) {
		return nil, ErrBadStayInterval
	}

	wireReq := backend.ReservationRequest{
		IDRoom:     req.RoomID,
		IDUser:     session.UserID,
		FirstNight: req.FirstNight,
		LastNight:  req.LastNight,
		FullName:   req.GuestName,
		BillType:   backend.BillTypeToWire(billType),
	}
	if billType == domain.BillInvoice {
		wireReq.Nip = req.TaxID
	}

	if err := s.api.CreateReservation(ctx, session.AccessToken, wireReq); err != nil {
		return nil, s.mapError("create", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": session.UserID,
		"room_id": req.RoomID,
	}).Info("reservation created")

	// The create acknowledgement carries no id; refetch to pick up the
	// server-assigned one and to sync the cache in the same pass.
	active, err := s.List(ctx, session, domain.ReservationActive)
	if err != nil {
		s.logger.WithError(err).Warn("post-create refetch failed")
		created := buildLocal(session.UserID, req, first, last)
		// Patch the acknowledged booking into the cache so it shows up
		// locally until the next successful refetch replaces the set.
		if err := s.cache.Insert(ctx, session.UserID, created); err != nil {
			s.logger.WithError(err).Warn("reservation cache insert failed")
		}
		return &created, nil
	}
	for i := range active {
		r := active[i]
		if r.RoomID == req.RoomID && r.FirstNight.Equal(first) && r.GuestName == req.GuestName {
			return &r, nil
		}
	}
	created := buildLocal(session.UserID, req, first, last)
	return &created, nil
}

// List fetches the user's reservations. "No reservations" is a normal
// empty sequence, distinguished from failures by response shape upstream.
// A successful active-list fetch replaces the local cache wholesale.
func (s *Service) List(ctx context.Context, session *domain.Session, status domain.ReservationStatus) ([]domain.Reservation, error) {
	items, err := s.api.UserReservations(ctx, session.AccessToken, session.UserID, status)
	if err != nil {
		if errors.Is(err, backend.ErrNoResults) {
			items = []domain.Reservation{}
		} else {
			return nil, s.mapError("list", err)
		}
	}

	if status == domain.ReservationActive {
		if err := s.cache.ReplaceForUser(ctx, session.UserID, items); err != nil {
			// Cache staleness is tolerable; the fetched list is still good.
			s.logger.WithError(err).Warn("reservation cache replace failed")
		}
	}
	return items, nil
}

// Cancel asks the service to cancel and, only after its confirmation,
// refetches the active list so the local cache reflects server state. On
// failure the cache is left untouched and the error surfaces verbatim.
func (s *Service) Cancel(ctx context.Context, session *domain.Session, reservationID int64) error {
	if err := s.api.CancelReservation(ctx, session.AccessToken, reservationID, session.UserID); err != nil {
		return s.mapError("cancel", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":        session.UserID,
		"reservation_id": reservationID,
	}).Info("reservation cancelled")

	if _, err := s.List(ctx, session, domain.ReservationActive); err != nil {
		s.logger.WithError(err).Warn("post-cancel refetch failed")
		// The cancel is confirmed; evict the entry directly so it cannot
		// resurface from the cache while the refetch path is down.
		if err := s.cache.RemoveByID(ctx, session.UserID, reservationID); err != nil {
			s.logger.WithError(err).Warn("reservation cache removal failed")
		}
	}
	return nil
}

// CachedActive returns the locally held active list without a network
// round trip.
func (s *Service) CachedActive(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.cache.ActiveForUser(ctx, userID)
}

func (s *Service) mapError(op string, err error) error {
	if errors.Is(err, backend.ErrUnreachable) {
		return ErrUnreachable
	}
	var rej *backend.RejectedError
	if errors.As(err, &rej) {
		return &RejectedError{Op: op, Message: rej.Message}
	}
	return err
}

func buildLocal(userID int64, req CreateReservationRequest, first, last time.Time) domain.Reservation {
	return domain.Reservation{
		RoomID:     req.RoomID,
		FirstNight: first,
		LastNight:  last,
		GuestName:  req.GuestName,
		BillType:   domain.BillType(req.BillType),
		TaxID:      req.TaxID,
		Status:     domain.ReservationActive,
	}
}
