package cancel_reservation

// Request modelo de solicitud de cancelación
type Request struct {
	ReservationID int64  // Reserva a cancelar
	RequesterID   int64  // Quien cancela: dueño o staff
	Reason        string // Motivo opcional
}

// Response modelo de respuesta de la cancelación
type Response struct {
	ReservationID int64
	Status        string
	StatusDisplay string
	// AlreadyCanceled indica que la reserva ya estaba cancelada
	// y la operación fue un no-op idempotente
	AlreadyCanceled bool
}
