package ports

import (
	"context"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// RegisterInput carries the fields of a self-service sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// AssignRole changes a user's profile role. Only known roles are accepted.
	AssignRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error)
}

// TokenVerifier turns a session token into the identity it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Identity, error)
}
