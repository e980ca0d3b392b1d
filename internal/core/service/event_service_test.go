package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	updateErr error
	insertErr error
	updated   []string // protocols updated
	inserted  []*domain.ProcessEvent
}

func (r *stubEventRepo) UpdateProcessStatus(_ context.Context, e *domain.ProcessEvent) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, e.Protocol)
	return nil
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.ProcessEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, protocol, status string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, protocol, status string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, protocol+":"+status)
	return nil
}

func newEventSvc(repo *stubProcessRepo, eventRepo *stubEventRepo, dedup *stubDedup) ports.EventService {
	return NewEventService(repo, eventRepo, dedup, zerolog.Nop())
}

func seededRepo(protocol string, status domain.ProcessStatus) *stubProcessRepo {
	repo := newStubProcessRepo()
	seedProcess(repo, protocol, "client-1", status)
	return repo
}

func event(status domain.ProcessStatus) ports.ProcessEventInput {
	return ports.ProcessEventInput{
		Protocol:  "VS-AABBCCDD",
		Status:    string(status),
		Timestamp: time.Now(),
		Source:    "despachante",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEventService_Process_HappyPath(t *testing.T) {
	repo := seededRepo("VS-AABBCCDD", domain.StatusAberto)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}

	in := event(domain.StatusEmAnalise)
	in.Notes = "documentos recebidos"
	if err := newEventSvc(repo, evRepo, dedup).Process(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.updated) != 1 || evRepo.updated[0] != "VS-AABBCCDD" {
		t.Errorf("expected process status updated, got: %v", evRepo.updated)
	}
	if len(evRepo.inserted) != 1 || evRepo.inserted[0].Notes != "documentos recebidos" {
		t.Errorf("expected audit event with notes, got %+v", evRepo.inserted)
	}
	if len(dedup.marked) != 1 {
		t.Errorf("expected dedup key marked")
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	repo := seededRepo("VS-AABBCCDD", domain.StatusAberto)
	evRepo := &stubEventRepo{}

	err := newEventSvc(repo, evRepo, &stubDedup{dupResult: true}).Process(context.Background(), event(domain.StatusEmAnalise))
	if err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if len(evRepo.updated) != 0 {
		t.Errorf("expected no update for duplicate event")
	}
}

func TestEventService_Process_NotFound(t *testing.T) {
	err := newEventSvc(newStubProcessRepo(), &stubEventRepo{}, &stubDedup{}).Process(context.Background(), event(domain.StatusEmAnalise))
	if !errors.Is(err, domain.ErrProcessNotFound) {
		t.Errorf("expected ErrProcessNotFound, got: %v", err)
	}
}

func TestEventService_Process_InvalidTransition(t *testing.T) {
	for _, tc := range []struct{ from, to domain.ProcessStatus }{
		{domain.StatusAberto, domain.StatusConcluido},
		{domain.StatusConcluido, domain.StatusCancelado},
		{domain.StatusCancelado, domain.StatusAberto},
	} {
		repo := seededRepo("VS-AABBCCDD", tc.from)
		evRepo := &stubEventRepo{}

		err := newEventSvc(repo, evRepo, &stubDedup{}).Process(context.Background(), event(tc.to))
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got: %v", tc.from, tc.to, err)
		}
		if len(evRepo.updated) != 0 {
			t.Errorf("%s -> %s: expected no update", tc.from, tc.to)
		}
	}
}

func TestEventService_Process_DedupCheckError_ProcessesAnyway(t *testing.T) {
	repo := seededRepo("VS-AABBCCDD", domain.StatusAberto)
	evRepo := &stubEventRepo{}

	err := newEventSvc(repo, evRepo, &stubDedup{dupErr: errors.New("redis timeout")}).Process(context.Background(), event(domain.StatusCancelado))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected update to proceed when dedup check errors")
	}
}

func TestEventService_Process_UpdateFailureIsFatal(t *testing.T) {
	repo := seededRepo("VS-AABBCCDD", domain.StatusAberto)
	evRepo := &stubEventRepo{updateErr: errors.New("write conflict")}

	if err := newEventSvc(repo, evRepo, &stubDedup{}).Process(context.Background(), event(domain.StatusEmAnalise)); err == nil {
		t.Fatal("expected update failure to surface")
	}
	if len(evRepo.inserted) != 0 {
		t.Error("no audit entry must be written when the update fails")
	}
}

func TestEventService_Process_AuditFailureIsNonFatal(t *testing.T) {
	repo := seededRepo("VS-AABBCCDD", domain.StatusAberto)
	evRepo := &stubEventRepo{insertErr: errors.New("mongo unavailable")}

	if err := newEventSvc(repo, evRepo, &stubDedup{}).Process(context.Background(), event(domain.StatusEmAnalise)); err != nil {
		t.Fatalf("expected audit failure to be non-fatal, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Error("expected process status to be updated")
	}
}
