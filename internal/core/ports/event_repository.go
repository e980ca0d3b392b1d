package ports

import (
	"context"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// EventRepository handles event persistence and atomic process status updates.
type EventRepository interface {
	// UpdateProcessStatus atomically sets the process's new status and
	// appends a history entry built from the event.
	UpdateProcessStatus(ctx context.Context, event *domain.ProcessEvent) error

	// InsertEvent persists an event to the process_events audit collection.
	InsertEvent(ctx context.Context, event *domain.ProcessEvent) error
}
