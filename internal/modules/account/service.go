package account

import (
	"context"

	"github.com/sirupsen/logrus"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

type Service struct {
	api    CredentialAPI
	logger *logrus.Logger
}

func NewService(api CredentialAPI, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	session, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", session.UserID).Info("user logged in")
	return session, nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	return s.api.Register(ctx, backend.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
	})
}

func (s *Service) ChangePassword(ctx context.Context, session *domain.Session, req ChangePasswordRequest) error {
	return s.api.ChangePassword(ctx, session.AccessToken, session.UserID, req.OldPassword, req.NewPassword)
}
