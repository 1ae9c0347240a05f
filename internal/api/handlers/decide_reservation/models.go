package decide_reservation

import (
	"github.com/lxo898/reservas-inacap/internal/domain"
)

// Decisiones aceptadas por la API
const (
	decisionApprove = "approve"
	decisionReject  = "reject"
)

// DecideReservationRequest HTTP request model
type DecideReservationRequest struct {
	Decision string `json:"decision"` // "approve" | "reject"
	Notes    string `json:"notes,omitempty"`
}

// DecideReservationResponse HTTP response model
type DecideReservationResponse struct {
	ReservationID int64  `json:"reservationId"`
	Status        string `json:"status"`
	StatusDisplay string `json:"statusDisplay"`
	Decision      string `json:"decision"`
	Notes         string `json:"notes,omitempty"`
	DecidedAt     string `json:"decidedAt"`
}

// toDomainDecision traduce la decisión textual de la API al dominio
func toDomainDecision(s string) (domain.Decision, bool) {
	switch s {
	case decisionApprove:
		return domain.DecisionApprove, true
	case decisionReject:
		return domain.DecisionReject, true
	default:
		return "", false
	}
}
