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

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, protocol, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, protocol, status string, ts time.Time) error
}

type eventService struct {
	processRepo ports.ProcessRepository
	eventRepo   ports.EventRepository
	dedup       DedupChecker
	log         zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	processRepo ports.ProcessRepository,
	eventRepo ports.EventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		processRepo: processRepo,
		eventRepo:   eventRepo,
		dedup:       dedup,
		log:         log,
	}
}

// Process validates, deduplicates, and persists a single process event.
func (s *eventService) Process(ctx context.Context, in ports.ProcessEventInput) error {
	newStatus := domain.ProcessStatus(in.Status)

	// Duplicates are skipped silently.
	isDup, err := s.dedup.IsDuplicate(ctx, in.Protocol, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("protocol", in.Protocol).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("protocol", in.Protocol).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}
	metrics.EventsDedupTotal.WithLabelValues("miss").Inc()

	process, err := s.processRepo.FindByProtocol(ctx, in.Protocol, "")
	if err != nil {
		if errors.Is(err, domain.ErrProcessNotFound) {
			metrics.EventsErrorsTotal.WithLabelValues("process_not_found").Inc()
		}
		return fmt.Errorf("process event: %w", err)
	}

	if !process.Status.CanTransitionTo(newStatus) {
		metrics.EventsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, process.Status, newStatus)
	}

	// Marked before writing so a retried delivery is not applied twice.
	if markErr := s.dedup.Mark(ctx, in.Protocol, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("protocol", in.Protocol).Msg("failed to set dedup key")
	}

	event := &domain.ProcessEvent{
		Protocol:  in.Protocol,
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Source:    in.Source,
		Notes:     in.Notes,
	}

	if err := s.eventRepo.UpdateProcessStatus(ctx, event); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process event: update status: %w", err)
	}

	// Audit trail failures are non-fatal.
	if err := s.eventRepo.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("protocol", in.Protocol).Msg("failed to insert audit event")
	}

	metrics.EventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	s.log.Info().
		Str("protocol", in.Protocol).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("event processed")

	return nil
}
