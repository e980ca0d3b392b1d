package ports

import (
	"context"
	"time"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// ListProcessesFilter carries all query parameters for listing processes.
// ClientID is always enforced by the service layer for client roles.
type ListProcessesFilter struct {
	ClientID string    // empty = no filter (staff); non-empty = scoped to client
	Status   string    // optional
	Type     string    // optional
	Search   string    // optional: partial match on protocol, plate or client name
	DateFrom time.Time // optional: created_at >= DateFrom
	DateTo   time.Time // optional: created_at <= DateTo
	Page     int       // 1-based
	Limit    int
}

// ProcessRepository defines persistence operations for service processes.
type ProcessRepository interface {
	Create(ctx context.Context, p *domain.ServiceProcess) error
	// FindByProtocol retrieves a process by protocol. When clientID is
	// non-empty the query is additionally filtered by client_id.
	FindByProtocol(ctx context.Context, protocol, clientID string) (*domain.ServiceProcess, error)
	FindByIdempotencyKey(ctx context.Context, key, clientID string) (*domain.ServiceProcess, error)
	// List returns a page of processes matching filter and the total count.
	List(ctx context.Context, filter ListProcessesFilter) ([]*domain.ServiceProcess, int64, error)
}
