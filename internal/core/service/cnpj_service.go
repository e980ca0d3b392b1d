package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

// CNPJService answers CNPJ lookups from the cache table, falling back to the
// external registry on a miss. There is no retry and no invalidation.
type CNPJService struct {
	cache    ports.CNPJCache
	registry ports.CNPJRegistry
	log      zerolog.Logger
	now      func() time.Time
}

func NewCNPJService(cache ports.CNPJCache, registry ports.CNPJRegistry, log zerolog.Logger) *CNPJService {
	return &CNPJService{cache: cache, registry: registry, log: log, now: time.Now}
}

// Lookup normalizes raw, serves a cached row when present, and otherwise
// fetches and stores the registry answer. A failed cache read or write is
// logged and does not fail the lookup.
func (s *CNPJService) Lookup(ctx context.Context, raw string) (*ports.CNPJLookupResult, error) {
	cnpj, err := domain.NormalizeCNPJ(raw)
	if err != nil {
		metrics.CNPJLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	cached, err := s.cache.Get(ctx, cnpj)
	switch {
	case err == nil:
		metrics.CNPJLookupsTotal.WithLabelValues("hit").Inc()
		return &ports.CNPJLookupResult{CNPJ: cnpj, Payload: cached.Payload, FromCache: true}, nil
	case !errors.Is(err, domain.ErrCNPJCacheMiss):
		s.log.Warn().Err(err).Str("cnpj", cnpj).Msg("cnpj cache read failed, querying registry")
	}

	payload, err := s.registry.Fetch(ctx, cnpj)
	if err != nil {
		metrics.CNPJLookupsTotal.WithLabelValues("upstream_error").Inc()
		return nil, fmt.Errorf("cnpj lookup: %w", err)
	}
	metrics.CNPJLookupsTotal.WithLabelValues("miss").Inc()

	record := &domain.CNPJRecord{CNPJ: cnpj, Payload: payload, FetchedAt: s.now().UTC()}
	if err := s.cache.Save(ctx, record); err != nil {
		s.log.Warn().Err(err).Str("cnpj", cnpj).Msg("failed to cache cnpj lookup")
	}

	return &ports.CNPJLookupResult{CNPJ: cnpj, Payload: payload, FromCache: false}, nil
}
