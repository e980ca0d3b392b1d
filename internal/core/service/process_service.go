package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ProcessService struct {
	repo   ports.ProcessRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProcessService(repo ports.ProcessRepository, logger zerolog.Logger) *ProcessService {
	return &ProcessService{repo: repo, logger: logger, now: time.Now}
}

// CreateProcess opens a new service process. Client roles always own what
// they open; staff must name the client. If an idempotency key is provided
// and already seen, the existing process is returned without side effects.
func (s *ProcessService) CreateProcess(ctx context.Context, input ports.CreateProcessInput) (*ports.ProcessResult, error) {
	role := input.Actor.Role
	clientID := strings.TrimSpace(input.ClientID)
	switch {
	case role.IsClient():
		clientID = input.Actor.UserID
	case role.IsStaff():
		if clientID == "" {
			return nil, domain.ErrClientRequired
		}
	default:
		return nil, domain.ErrForbidden
	}

	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey, clientID)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("protocol", existing.Protocol).Msg("idempotent replay")
			return &ports.ProcessResult{
				Protocol:       existing.Protocol,
				Status:         string(existing.Status),
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	now := s.now().UTC()
	process := &domain.ServiceProcess{
		Protocol:       generateProtocol(),
		ClientID:       clientID,
		ClientName:     strings.TrimSpace(input.ClientName),
		ClientDocument: strings.TrimSpace(input.ClientDocument),
		VehiclePlate:   normalizePlate(input.VehiclePlate),
		Type:           domain.ProcessType(input.Type),
		Status:         domain.StatusAberto,
		CreatedBy:      input.Actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
		IdempotencyKey: input.IdempotencyKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusAberto, Timestamp: now, Source: input.Actor.Role.String()},
		},
	}

	if err := s.repo.Create(ctx, process); err != nil {
		s.logger.Error().Err(err).Msg("failed to create process")
		return nil, err
	}

	metrics.ProcessesCreatedTotal.WithLabelValues(string(process.Type)).Inc()
	s.logger.Info().Str("protocol", process.Protocol).Str("client_id", clientID).Str("type", input.Type).Msg("process created")

	return &ports.ProcessResult{
		Protocol:  process.Protocol,
		Status:    string(process.Status),
		CreatedAt: process.CreatedAt,
	}, nil
}

// GetProcess returns one process. Client roles only see their own; someone
// else's process reads as not found.
func (s *ProcessService) GetProcess(ctx context.Context, actor ports.Actor, protocol string) (*domain.ServiceProcess, error) {
	clientID, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByProtocol(ctx, protocol, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrProcessNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get process: %w", err)
	}
	return p, nil
}

// ListProcesses returns a filtered page. Limit defaults to 20 and is capped
// at 100; page starts at 1.
func (s *ProcessService) ListProcesses(ctx context.Context, input ports.ListProcessesInput) (*ports.ListProcessesResult, error) {
	clientID, err := scopeFor(input.Actor)
	if err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListProcessesFilter{
		ClientID: clientID,
		Status:   input.Status,
		Type:     input.Type,
		Search:   strings.TrimSpace(input.Search),
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	return &ports.ListProcessesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// scopeFor returns the client filter for actor: none for staff, the actor's
// own id for client roles. Unknown roles get nothing.
func scopeFor(actor ports.Actor) (string, error) {
	switch {
	case actor.Role.IsStaff():
		return "", nil
	case actor.Role.IsClient():
		if actor.UserID == "" {
			return "", domain.ErrForbidden
		}
		return actor.UserID, nil
	default:
		return "", domain.ErrForbidden
	}
}

// generateProtocol returns a unique protocol in the format VS-XXXXXXXX.
func generateProtocol() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("VS-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("VS-%08X", b)
}

func normalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.ReplaceAll(plate, "-", "")
}
