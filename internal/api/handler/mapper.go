package handler

import (
	"encoding/json"
	"fmt"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

func processSelf(protocol string) processLinks {
	return processLinks{Self: "/v1/processes/" + protocol}
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt.UTC()}
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      domain.ParseRole(string(p.Role)).String(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toCreateProcessResponse(r *ports.ProcessResult) createProcessResponse {
	return createProcessResponse{
		Protocol:  r.Protocol,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC(),
		Links:     processSelf(r.Protocol),
	}
}

// toProcessResponse maps a process; history is only included when withHistory
// is set so list payloads stay small.
func toProcessResponse(p *domain.ServiceProcess, withHistory bool) processResponse {
	resp := processResponse{
		Protocol:       p.Protocol,
		Status:         string(p.Status),
		Type:           string(p.Type),
		ClientID:       p.ClientID,
		ClientName:     p.ClientName,
		ClientDocument: p.ClientDocument,
		VehiclePlate:   p.VehiclePlate,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
		Links:          processSelf(p.Protocol),
	}
	if withHistory {
		resp.StatusHistory = make([]statusHistoryItemResponse, len(p.StatusHistory))
		for i, h := range p.StatusHistory {
			resp.StatusHistory[i] = statusHistoryItemResponse{
				Status:    string(h.Status),
				Timestamp: h.Timestamp.UTC(),
				Source:    h.Source,
				Notes:     h.Notes,
			}
		}
	}
	return resp
}

func toListResponse(r *ports.ListProcessesResult) listProcessesResponse {
	items := make([]processResponse, len(r.Items))
	for i, p := range r.Items {
		items[i] = toProcessResponse(p, false)
	}
	return listProcessesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toEventInput(r processEventRequest) ports.ProcessEventInput {
	return ports.ProcessEventInput{
		Protocol:  r.Protocol,
		Status:    r.Status,
		Timestamp: r.Timestamp,
		Source:    r.Source,
		Notes:     r.Notes,
	}
}

// toCNPJLookupResponse merges from_cache into the registry object. A payload
// that is not a JSON object cannot carry the flag and reads as a bad upstream.
func toCNPJLookupResponse(r *ports.CNPJLookupResult) (cnpjLookupResponse, error) {
	var doc cnpjLookupResponse
	if err := json.Unmarshal(r.Payload, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: payload for %s is not a JSON object", domain.ErrRegistryUnavailable, r.CNPJ)
	}
	doc["from_cache"] = json.RawMessage("false")
	if r.FromCache {
		doc["from_cache"] = json.RawMessage("true")
	}
	return doc, nil
}
