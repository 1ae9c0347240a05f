package models

import (
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// Request modelos

// BlockRequest bloque horario de un espacio para el evento
type BlockRequest struct {
	SpaceID         int64     `json:"spaceId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	Setup           string    `json:"setup,omitempty"`
	BufferBeforeMin int       `json:"bufferBeforeMin,omitempty"`
	BufferAfterMin  int       `json:"bufferAfterMin,omitempty"`
}

// ServiceRequestInput orden de trabajo solicitada junto con el evento
type ServiceRequestInput struct {
	Area   string     `json:"area"`
	Detail string     `json:"detail"`
	DueAt  *time.Time `json:"dueAt,omitempty"`
}

// CreateEventRequest solicitud de creación de evento
type CreateEventRequest struct {
	OrganizerID          int64                 `json:"organizerId"`
	Title                string                `json:"title"`
	Type                 string                `json:"type"`
	Sede                 string                `json:"sede,omitempty"`
	ExpectedAttendance   int                   `json:"expectedAttendance"`
	Visibility           string                `json:"visibility"`
	RequiresRegistration bool                  `json:"requiresRegistration"`
	Notes                string                `json:"notes,omitempty"`
	Blocks               []BlockRequest        `json:"blocks"`
	Services             []ServiceRequestInput `json:"services,omitempty"`
}

// DecideEventRequest decisión sobre un evento pendiente
type DecideEventRequest struct {
	EventID    int64  `json:"eventId"`
	ApproverID int64  `json:"approverId"`
	Decision   string `json:"decision"`
	Notes      string `json:"notes,omitempty"`
}

// Response modelos

// BlockResponse bloque del evento
type BlockResponse struct {
	ID              int64  `json:"id"`
	SpaceID         int64  `json:"spaceId"`
	SpaceName       string `json:"spaceName"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	Setup           string `json:"setup,omitempty"`
	BufferBeforeMin int    `json:"bufferBeforeMin"`
	BufferAfterMin  int    `json:"bufferAfterMin"`
}

// ServiceRequestResponse orden de trabajo del evento
type ServiceRequestResponse struct {
	ID         int64  `json:"id"`
	Area       string `json:"area"`
	Detail     string `json:"detail"`
	DueAt      string `json:"dueAt,omitempty"`
	Status     string `json:"status"`
	AssignedTo *int64 `json:"assignedTo,omitempty"`
}

// EventResponse datos completos de un evento
type EventResponse struct {
	ID                   int64                     `json:"id"`
	Title                string                    `json:"title"`
	Type                 string                    `json:"type"`
	OrganizerID          int64                     `json:"organizerId"`
	Sede                 string                    `json:"sede,omitempty"`
	ExpectedAttendance   int                       `json:"expectedAttendance"`
	Visibility           string                    `json:"visibility"`
	RequiresRegistration bool                      `json:"requiresRegistration"`
	Notes                string                    `json:"notes,omitempty"`
	Status               string                    `json:"status"`
	CreatedAt            string                    `json:"createdAt"`
	Blocks               []*BlockResponse          `json:"blocks"`
	Services             []*ServiceRequestResponse `json:"services"`
}

// EventListResponse listado de eventos
type EventListResponse struct {
	Events []*EventResponse `json:"events"`
	Total  int              `json:"total"`
}

// ApprovalResponse registro del historial de decisiones
type ApprovalResponse struct {
	ApproverID int64  `json:"approverId"`
	Decision   string `json:"decision"`
	Notes      string `json:"notes,omitempty"`
	DecidedAt  string `json:"decidedAt"`
}

// FromDomainEvent convierte el evento de dominio a response
func FromDomainEvent(e *domain.Event) *EventResponse {
	blocks := make([]*BlockResponse, 0, len(e.Blocks))
	for _, b := range e.Blocks {
		blocks = append(blocks, &BlockResponse{
			ID:              b.ID,
			SpaceID:         b.SpaceID,
			SpaceName:       b.SpaceName,
			StartAt:         b.StartAt.Format(domain.DateTimeFormat),
			EndAt:           b.EndAt.Format(domain.DateTimeFormat),
			Setup:           b.Setup,
			BufferBeforeMin: b.BufferBeforeMin,
			BufferAfterMin:  b.BufferAfterMin,
		})
	}

	services := make([]*ServiceRequestResponse, 0, len(e.Services))
	for _, svc := range e.Services {
		resp := &ServiceRequestResponse{
			ID:         svc.ID,
			Area:       string(svc.Area),
			Detail:     svc.Detail,
			Status:     string(svc.Status),
			AssignedTo: svc.AssignedTo,
		}
		if svc.DueAt != nil {
			resp.DueAt = svc.DueAt.Format(domain.DateTimeFormat)
		}
		services = append(services, resp)
	}

	return &EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Type:                 string(e.Type),
		OrganizerID:          e.OrganizerID,
		Sede:                 e.Sede,
		ExpectedAttendance:   e.ExpectedAttendance,
		Visibility:           string(e.Visibility),
		RequiresRegistration: e.RequiresRegistration,
		Notes:                e.Notes,
		Status:               string(e.Status),
		CreatedAt:            e.CreatedAt.Format(domain.DateTimeFormat),
		Blocks:               blocks,
		Services:             services,
	}
}

// FromDomainEventList convierte una lista de eventos a response
func FromDomainEventList(list []*domain.Event) *EventListResponse {
	out := make([]*EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromDomainEvent(e))
	}
	return &EventListResponse{Events: out, Total: len(out)}
}

// FromDomainApprovals convierte el historial de decisiones a response
func FromDomainApprovals(list []*domain.EventApproval) []*ApprovalResponse {
	out := make([]*ApprovalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, &ApprovalResponse{
			ApproverID: a.ApproverID,
			Decision:   string(a.Decision),
			Notes:      a.Notes,
			DecidedAt:  a.DecidedAt.Format(domain.DateTimeFormat),
		})
	}
	return out
}
