package create_reservation

import (
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
	createReservation "github.com/lxo898/reservas-inacap/internal/usecase/create_reservation"
	"github.com/lxo898/reservas-inacap/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID        int64   `json:"spaceId"`
	Date           string  `json:"date"`      // "2026-03-15"
	StartSlot      string  `json:"startSlot"` // "10:00"
	EndSlot        string  `json:"endSlot"`   // "11:30"
	Purpose        string  `json:"purpose"`
	AttendeesCount int     `json:"attendeesCount"`
	ResourceIDs    []int64 `json:"resourceIds,omitempty"`
	ResourceNotes  string  `json:"resourceNotes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	SpaceID        int64   `json:"spaceId"`
	SpaceName      string  `json:"spaceName"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	Purpose        string  `json:"purpose"`
	AttendeesCount int     `json:"attendeesCount"`
	Status         string  `json:"status"`
	StatusDisplay  string  `json:"statusDisplay"`
	ResourceIDs    []int64 `json:"resourceIds"`
	ResourceNotes  string  `json:"resourceNotes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// ToUseCaseRequest convierte el request HTTP al modelo del use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startSlot, err := types.NewTimeStringFromString(r.StartSlot)
	if err != nil {
		return nil, err
	}
	endSlot, err := types.NewTimeStringFromString(r.EndSlot)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:         userID,
		SpaceID:        r.SpaceID,
		Date:           date,
		StartSlot:      startSlot,
		EndSlot:        endSlot,
		Purpose:        r.Purpose,
		AttendeesCount: r.AttendeesCount,
		ResourceIDs:    r.ResourceIDs,
		ResourceNotes:  r.ResourceNotes,
	}, nil
}

// FromUseCaseResponse convierte la respuesta del use case a HTTP
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		SpaceID:        resp.SpaceID,
		SpaceName:      resp.SpaceName,
		StartAt:        resp.StartAt.Format(domain.DateTimeFormat),
		EndAt:          resp.EndAt.Format(domain.DateTimeFormat),
		Purpose:        resp.Purpose,
		AttendeesCount: resp.AttendeesCount,
		Status:         resp.Status,
		StatusDisplay:  resp.StatusDisplay,
		ResourceIDs:    resp.ResourceIDs,
		ResourceNotes:  resp.ResourceNotes,
		CreatedAt:      resp.CreatedAt.Format(domain.DateTimeFormat),
	}
}
