package ports

import (
	"context"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ProfileRepository persists the role-carrying profile of each user.
type ProfileRepository interface {
	// FindByUserID returns domain.ErrProfileNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
	SetRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error)
}
