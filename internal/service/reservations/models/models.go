package models

import (
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// Request modelos

// GetUserReservationsRequest historial de reservas de un usuario
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Filtro opcional por estado
}

// AvailabilityRequest feed de disponibilidad para el calendario
type AvailabilityRequest struct {
	SpaceID *int64     `json:"spaceId,omitempty"` // Filtro opcional por espacio
	From    *time.Time `json:"from,omitempty"`    // Inicio de la ventana visible
	To      *time.Time `json:"to,omitempty"`      // Fin de la ventana visible
}

// Response modelos

// ReservationResponse datos de una reserva
type ReservationResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	UserName       string  `json:"userName"`
	UserFullName   string  `json:"userFullName"`
	SpaceID        int64   `json:"spaceId"`
	SpaceName      string  `json:"spaceName"`
	StartAt        string  `json:"startAt"` // "2026-03-15 10:00"
	EndAt          string  `json:"endAt"`
	Purpose        string  `json:"purpose"`
	AttendeesCount int     `json:"attendeesCount"`
	Status         string  `json:"status"`
	StatusDisplay  string  `json:"statusDisplay"`
	ResourceIDs    []int64 `json:"resourceIds"`
	ResourceNotes  string  `json:"resourceNotes,omitempty"`
	CancelReason   string  `json:"cancelReason,omitempty"`
	CreatedAt      string  `json:"createdAt"`

	Approval *ApprovalInfo `json:"approval,omitempty"`
}

// ApprovalInfo decisión registrada sobre la reserva
type ApprovalInfo struct {
	ApproverID int64  `json:"approverId"`
	Decision   string `json:"decision"`
	Notes      string `json:"notes,omitempty"`
	DecidedAt  string `json:"decidedAt"`
}

// ReservationListResponse listado de reservas
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// CalendarEvent entrada del feed con el formato que consume FullCalendar
type CalendarEvent struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"` // "Auditorio (Aprobada)"
	Start           string             `json:"start"` // RFC 3339
	End             string             `json:"end"`
	BackgroundColor string             `json:"backgroundColor"`
	BorderColor     string             `json:"borderColor"`
	TextColor       string             `json:"textColor"`
	ExtendedProps   CalendarEventProps `json:"extendedProps"`
}

// CalendarEventProps datos extra que FullCalendar expone en extendedProps
type CalendarEventProps struct {
	Status string `json:"status"`
}

// FromDomainReservation convierte la reserva de dominio a response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		UserFullName:   r.UserFullName,
		SpaceID:        r.SpaceID,
		SpaceName:      r.SpaceName,
		StartAt:        r.StartAt.Format(domain.DateTimeFormat),
		EndAt:          r.EndAt.Format(domain.DateTimeFormat),
		Purpose:        r.Purpose,
		AttendeesCount: r.AttendeesCount,
		Status:         string(r.Status),
		StatusDisplay:  r.Status.Display(),
		ResourceIDs:    r.ResourceIDs,
		ResourceNotes:  r.ResourceNotes,
		CancelReason:   r.CancelReason,
		CreatedAt:      r.CreatedAt.Format(domain.DateTimeFormat),
	}
	if resp.ResourceIDs == nil {
		resp.ResourceIDs = []int64{}
	}
	return resp
}

// FromDomainReservationList convierte una lista de reservas a response
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

// FromDomainApproval convierte la decisión de dominio a response
func FromDomainApproval(a *domain.Approval) *ApprovalInfo {
	return &ApprovalInfo{
		ApproverID: a.ApproverID,
		Decision:   string(a.Decision),
		Notes:      a.Notes,
		DecidedAt:  a.DecidedAt.Format(domain.DateTimeFormat),
	}
}

// Colores del calendario por estado
const (
	colorApproved     = "#198754"
	textColorApproved = "#ffffff"
	colorPending      = "#ffc107"
	textColorPending  = "#212529"
)

// CalendarEventFromReservation arma la entrada del feed.
// Solo reservas activas llegan aquí: las canceladas y rechazadas
// no aparecen en el calendario.
func CalendarEventFromReservation(r *domain.Reservation) *CalendarEvent {
	color, textColor := colorPending, textColorPending
	if r.Status == domain.StatusApproved {
		color, textColor = colorApproved, textColorApproved
	}
	return &CalendarEvent{
		ID:              r.ID,
		Title:           r.SpaceName + " (" + r.Status.Display() + ")",
		Start:           r.StartAt.Format(time.RFC3339),
		End:             r.EndAt.Format(time.RFC3339),
		BackgroundColor: color,
		BorderColor:     color,
		TextColor:       textColor,
		ExtendedProps:   CalendarEventProps{Status: string(r.Status)},
	}
}

// ToDomainStatus convierte el estado textual a dominio
func ToDomainStatus(s string) (domain.ReservationStatus, bool) {
	status := domain.ReservationStatus(s)
	return status, status.IsValid()
}
