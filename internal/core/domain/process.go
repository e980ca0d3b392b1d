package domain

import (
	"errors"
	"time"
)

// ProcessType is the kind of vehicle-document service being handled.
type ProcessType string

const (
	ProcessEmplacamento  ProcessType = "emplacamento"
	ProcessTransferencia ProcessType = "transferencia"
	ProcessLicenciamento ProcessType = "licenciamento"
)

// ProcessStatus represents the lifecycle state of a service process.
type ProcessStatus string

const (
	StatusAberto      ProcessStatus = "aberto"
	StatusEmAnalise   ProcessStatus = "em_analise"
	StatusEmAndamento ProcessStatus = "em_andamento"
	StatusConcluido   ProcessStatus = "concluido"
	StatusCancelado   ProcessStatus = "cancelado"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[ProcessStatus][]ProcessStatus{
	StatusAberto:      {StatusEmAnalise, StatusCancelado},
	StatusEmAnalise:   {StatusEmAndamento, StatusCancelado},
	StatusEmAndamento: {StatusConcluido, StatusCancelado},
}

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProcessNotFound   = errors.New("process not found")
	ErrDuplicateProcess  = errors.New("process already exists")
	ErrForbidden         = errors.New("access forbidden")
	ErrClientRequired    = errors.New("client_id is required")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ProcessStatus) CanTransitionTo(next ProcessStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ProcessStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// StatusHistoryEntry records a single status transition on a process.
type StatusHistoryEntry struct {
	Status    ProcessStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Source    string        `json:"source,omitempty" bson:"source,omitempty"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ServiceProcess is the aggregate root for a client's document service.
type ServiceProcess struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	Protocol       string               `json:"protocol" bson:"protocol"`
	ClientID       string               `json:"client_id" bson:"client_id"`
	ClientName     string               `json:"client_name" bson:"client_name"`
	ClientDocument string               `json:"client_document" bson:"client_document"`
	VehiclePlate   string               `json:"vehicle_plate" bson:"vehicle_plate"`
	Type           ProcessType          `json:"type" bson:"type"`
	Status         ProcessStatus        `json:"status" bson:"status"`
	CreatedBy      string               `json:"created_by" bson:"created_by"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
	IdempotencyKey string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}
