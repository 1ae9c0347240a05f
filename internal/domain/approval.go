package domain

import "time"

// Decision decisión sobre una reserva o evento
type Decision string

const (
	DecisionApprove Decision = "APPR"
	DecisionReject  Decision = "REJ"
)

// IsValid indica si la decisión es conocida
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Approval registro de la decisión sobre una reserva.
// Uno a uno con la reserva (upsert por reservation_id).
type Approval struct {
	ID            int64
	ReservationID int64
	ApproverID    int64
	Decision      Decision
	Notes         string
	DecidedAt     time.Time
}
