package domain

import "time"

// ReservationStatus estado de una reserva
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "PEND"
	StatusApproved ReservationStatus = "APPR"
	StatusRejected ReservationStatus = "REJ"
	StatusCanceled ReservationStatus = "CANC"
)

// ActiveStatuses estados que cuentan para la detección de conflictos
var ActiveStatuses = []ReservationStatus{StatusPending, StatusApproved}

// Display nombre visible de cada estado (reportes, notificaciones)
func (s ReservationStatus) Display() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusApproved:
		return "Aprobada"
	case StatusRejected:
		return "Rechazada"
	case StatusCanceled:
		return "Cancelada"
	default:
		return string(s)
	}
}

// IsValid indica si el estado es uno de los conocidos
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Reservation reserva de un espacio por un bloque horario [StartAt, EndAt)
type Reservation struct {
	ID             int64
	UserID         int64
	SpaceID        int64
	StartAt        time.Time
	EndAt          time.Time
	Purpose        string
	AttendeesCount int
	Status         ReservationStatus

	// Recursos solicitados junto con la reserva (tabla aparte,
	// aquí solo los IDs) más el detalle en texto libre
	ResourceIDs   []int64
	ResourceNotes string

	CancelReason string
	CreatedAt    time.Time

	// Denormalizados para listados y reportes
	SpaceName    string
	UserName     string
	UserFullName string
}

// IsActive indica si la reserva cuenta para conflictos (pendiente o aprobada)
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// OverlapsRange verifica el cruce con un rango [start, end).
// Intervalos semiabiertos: reservas espalda con espalda NO se cruzan.
func (r *Reservation) OverlapsRange(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}

// CanCancel evalúa las reglas de cancelación por el dueño:
//   - no cancelada ni rechazada
//   - aún no comienza
//   - si está APROBADA, respeta la ventana mínima en horas
func (r *Reservation) CanCancel(now time.Time, minWindowHours int) bool {
	if r.Status == StatusRejected || r.Status == StatusCanceled {
		return false
	}
	if !r.StartAt.After(now) {
		return false
	}
	if r.Status == StatusApproved {
		return r.StartAt.Sub(now) >= time.Duration(minWindowHours)*time.Hour
	}
	return true
}

// ReservationFilter filtro para listados de reservas
type ReservationFilter struct {
	UserID  *int64
	SpaceID *int64
	Status  *ReservationStatus
	// Solo estados activos (PEND, APPR); ignorado si Status está definido
	OnlyActive bool
}
