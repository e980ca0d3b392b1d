package handler

import (
	"encoding/json"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type sessionResponse struct {
	State  string `json:"state"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Home   string `json:"home,omitempty"`
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin vendedor avulso despachante"`
}

type profileResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- CNPJ ---

type cnpjLookupRequest struct {
	CNPJ string `json:"cnpj" validate:"required"`
}

// cnpjLookupResponse is the registry document with a top-level from_cache
// flag added next to its own fields.
type cnpjLookupResponse map[string]json.RawMessage

// --- Processes ---

type createProcessRequest struct {
	ClientID       string `json:"client_id"`
	ClientName     string `json:"client_name"     validate:"required,max=160"`
	ClientDocument string `json:"client_document" validate:"required,max=20"`
	VehiclePlate   string `json:"vehicle_plate"   validate:"required,plate"`
	Type           string `json:"type"            validate:"required,oneof=emplacamento transferencia licenciamento"`
}

type processLinks struct {
	Self string `json:"self"`
}

type createProcessResponse struct {
	Protocol  string       `json:"protocol"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Links     processLinks `json:"_links"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type processResponse struct {
	Protocol       string                      `json:"protocol"`
	Status         string                      `json:"status"`
	Type           string                      `json:"type"`
	ClientID       string                      `json:"client_id"`
	ClientName     string                      `json:"client_name"`
	ClientDocument string                      `json:"client_document"`
	VehiclePlate   string                      `json:"vehicle_plate"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	StatusHistory  []statusHistoryItemResponse `json:"status_history,omitempty"`
	Links          processLinks                `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProcessesResponse struct {
	Data       []processResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Events ---

type processEventRequest struct {
	Protocol  string    `json:"protocol"  validate:"required"`
	Status    string    `json:"status"    validate:"required,oneof=em_analise em_andamento concluido cancelado"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required"`
	Notes     string    `json:"notes"     validate:"max=500"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// --- Views ---

type viewResponse struct {
	View  string `json:"view"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Home  string `json:"home"`
}
