package decide_reservation

import (
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// Request modelo de solicitud de decisión sobre una reserva pendiente
type Request struct {
	ReservationID int64           // Reserva a decidir
	ApproverID    int64           // Staff que decide
	Decision      domain.Decision // APPR o REJ
	Notes         string          // Observaciones; obligatorias al rechazar
}

// Response modelo de respuesta con la reserva ya decidida
type Response struct {
	ReservationID int64
	Status        string
	StatusDisplay string
	Decision      string
	Notes         string
	DecidedAt     time.Time
}
