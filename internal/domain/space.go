package domain

import "time"

// Space espacio físico reservable (sala, auditorio, cancha, etc.)
type Space struct {
	ID       int64
	Name     string
	Location string
	Capacity int
	IsActive bool
}

// Resource recurso informativo asociado opcionalmente a un espacio
// (proyector, telón, amplificación). Se adjunta a las reservas solo
// como trazabilidad, no descuenta stock.
type Resource struct {
	ID       int64
	Name     string
	Quantity int
	SpaceID  *int64

	CreatedAt time.Time
}
