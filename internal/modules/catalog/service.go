package catalog

import (
	"context"

	"github.com/sirupsen/logrus"

	"stayfinder/internal/domain"
)

type Service struct {
	api    ReferenceAPI
	logger *logrus.Logger
}

func NewService(api ReferenceAPI, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) Countries(ctx context.Context) ([]string, error) {
	return s.api.Countries(ctx)
}

func (s *Service) Cities(ctx context.Context, country string) ([]string, error) {
	return s.api.Cities(ctx, country)
}

func (s *Service) RoomFacilities(ctx context.Context) ([]string, error) {
	return s.api.RoomFacilities(ctx)
}

func (s *Service) HotelFacilities(ctx context.Context) ([]string, error) {
	return s.api.HotelFacilities(ctx)
}

func (s *Service) Hotel(ctx context.Context, hotelID int64) (*domain.Hotel, error) {
	return s.api.Hotel(ctx, hotelID)
}
