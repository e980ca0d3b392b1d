package ports

import (
	"context"
	"time"
)

// ProcessEventInput is the DTO passed from the transport layer to EventService.
type ProcessEventInput struct {
	Protocol  string
	Status    string
	Timestamp time.Time
	Source    string
	Notes     string
}

// EventService processes incoming process status events.
type EventService interface {
	Process(ctx context.Context, event ProcessEventInput) error
}
