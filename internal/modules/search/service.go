package search

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

type Service struct {
	rooms  RoomSearcher
	logger *logrus.Logger
}

func NewService(rooms RoomSearcher, logger *logrus.Logger) *Service {
	return &Service{rooms: rooms, logger: logger}
}

// Search issues the compiled criteria as a single availability query.
// Callers must not race two searches for the same filter session; cancel
// the previous context before starting another.
func (s *Service) Search(ctx context.Context, session *domain.Session, c Criteria) ([]domain.RoomCandidate, error) {
	req := serializeCriteria(c)

	s.logger.WithFields(logrus.Fields{
		"user_id":   session.UserID,
		"check_in":  req.StartDate,
		"check_out": req.EndDate,
		"guests":    req.Guests,
	}).Info("searching free rooms")

	rooms, err := s.rooms.SearchFreeRooms(ctx, session.AccessToken, req)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrNoResults):
			return nil, ErrNoMatches
		case errors.Is(err, backend.ErrUnreachable):
			s.logger.WithError(err).Warn("room search transport failure")
			return nil, ErrUnreachable
		}
		var rej *backend.RejectedError
		if errors.As(err, &rej) {
			return nil, &RejectedError{Message: rej.Message}
		}
		return nil, err
	}

	nights := c.Nights()
	for i := range rooms {
		if rooms[i].TotalPrice == 0 {
			rooms[i].TotalPrice = rooms[i].PricePerNight * float64(nights)
		}
	}

	s.logger.WithField("candidates", len(rooms)).Info("search completed")
	return rooms, nil
}

func serializeCriteria(c Criteria) backend.SearchRequest {
	req := backend.SearchRequest{
		StartDate:       c.CheckIn.Format(dateFormat),
		EndDate:         c.CheckOut.Format(dateFormat),
		Guests:          c.Guests,
		LowestPrice:     c.MinPrice,
		HighestPrice:    c.MaxPrice,
		MinHotelStars:   c.MinStars,
		MaxHotelStars:   c.MaxStars,
		SortBy:          c.SortBy,
		SortOrder:       c.SortOrder,
		RoomFacilities:  c.RoomFacilities,
		HotelFacilities: c.HotelFacilities,
	}
	if req.RoomFacilities == nil {
		req.RoomFacilities = []string{}
	}
	if req.HotelFacilities == nil {
		req.HotelFacilities = []string{}
	}
	if c.Country != "" {
		req.Countries = []string{c.Country}
	}
	if c.City != "" {
		req.City = []string{c.City}
	}
	return req
}
