package ports

import (
	"context"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// CNPJCache is the lookup cache table keyed by normalized CNPJ.
type CNPJCache interface {
	// Get returns domain.ErrCNPJCacheMiss when no row exists.
	Get(ctx context.Context, cnpj string) (*domain.CNPJRecord, error)
	Save(ctx context.Context, record *domain.CNPJRecord) error
}

// CNPJRegistry fetches company registration data from the external registry.
type CNPJRegistry interface {
	// Fetch returns the registry JSON document for cnpj. Any transport
	// failure or non-2xx answer is reported as domain.ErrRegistryUnavailable.
	Fetch(ctx context.Context, cnpj string) ([]byte, error)
}

// CNPJLookupResult is the registry payload plus its provenance.
type CNPJLookupResult struct {
	CNPJ      string
	Payload   []byte
	FromCache bool
}

type CNPJService interface {
	Lookup(ctx context.Context, raw string) (*CNPJLookupResult, error)
}
