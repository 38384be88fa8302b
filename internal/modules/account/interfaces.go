package account

import (
	"context"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
)

// CredentialAPI is the upstream credential/session collaborator. The
// gateway never inspects or stores passwords; it passes them through.
type CredentialAPI interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, req backend.RegisterRequest) error
	ChangePassword(ctx context.Context, token string, userID int64, oldPassword, newPassword string) error
}
