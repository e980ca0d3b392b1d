package ports

import (
	"context"
	"time"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	UserID string
	Email  string
	Role   domain.Role
}

// CreateProcessInput carries all data needed to open a new service process.
type CreateProcessInput struct {
	Actor          Actor
	ClientID       string // required for staff, ignored for client roles
	ClientName     string
	ClientDocument string
	VehiclePlate   string
	Type           string
	IdempotencyKey string
}

// ProcessResult is returned by the service after opening a process.
type ProcessResult struct {
	Protocol  string
	Status    string
	CreatedAt time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing process.
	AlreadyExisted bool
}

// ListProcessesInput carries all parameters for the list endpoint.
type ListProcessesInput struct {
	Actor    Actor
	Status   string
	Type     string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// ListProcessesResult is returned by ListProcesses.
type ListProcessesResult struct {
	Items      []*domain.ServiceProcess
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProcessService defines use-case operations for service processes.
type ProcessService interface {
	CreateProcess(ctx context.Context, input CreateProcessInput) (*ProcessResult, error)
	GetProcess(ctx context.Context, actor Actor, protocol string) (*domain.ServiceProcess, error)
	ListProcesses(ctx context.Context, input ListProcessesInput) (*ListProcessesResult, error)
}
