package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

// ProfileReader loads the profile attached to a user.
type ProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// Resolver turns a raw session token into a published SessionState.
type Resolver struct {
	tokens   ports.TokenVerifier
	profiles ProfileReader
	log      zerolog.Logger
}

func NewResolver(tokens ports.TokenVerifier, profiles ProfileReader, log zerolog.Logger) *Resolver {
	return &Resolver{tokens: tokens, profiles: profiles, log: log}
}

// Resolve verifies token, loads the profile and publishes the outcome into p.
// It publishes exactly once. A missing or failed profile fetch still yields
// a present session whose role is unknown; there is no retry.
func (r *Resolver) Resolve(ctx context.Context, p *Provider, token string) {
	if token == "" {
		metrics.SessionResolutionsTotal.WithLabelValues("no_token").Inc()
		p.Publish(domain.SessionState{Resolution: domain.ResolutionAbsent})
		return
	}

	ident, err := r.tokens.VerifyToken(token)
	if err != nil {
		r.log.Debug().Err(err).Msg("session token rejected")
		metrics.SessionResolutionsTotal.WithLabelValues("invalid_token").Inc()
		p.Publish(domain.SessionState{Resolution: domain.ResolutionAbsent})
		return
	}

	profile, err := r.profiles.FindByUserID(ctx, ident.UserID)
	switch {
	case err == nil:
		metrics.SessionResolutionsTotal.WithLabelValues("present").Inc()
	case errors.Is(err, domain.ErrProfileNotFound):
		profile = nil
		metrics.SessionResolutionsTotal.WithLabelValues("no_profile").Inc()
	default:
		profile = nil
		r.log.Warn().Err(err).Str("user_id", ident.UserID).Msg("profile fetch failed, role unknown")
		metrics.SessionResolutionsTotal.WithLabelValues("profile_error").Inc()
	}

	p.Publish(domain.SessionState{
		Resolution: domain.ResolutionPresent,
		Identity:   ident,
		Profile:    profile,
	})
}
