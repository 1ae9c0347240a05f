package create_reservation

import (
	"time"

	"github.com/lxo898/reservas-inacap/pkg/types"
)

// Request modelo de solicitud de creación de reserva
type Request struct {
	UserID         int64            // ID del solicitante
	SpaceID        int64            // ID del espacio a reservar
	Date           time.Time        // Fecha de la reserva (sin hora)
	StartSlot      types.TimeString // Bloque de inicio ("10:00")
	EndSlot        types.TimeString // Bloque de término, exclusivo ("11:30")
	Purpose        string           // Motivo de la reserva
	AttendeesCount int              // Cantidad de asistentes
	ResourceIDs    []int64          // Recursos de apoyo solicitados
	ResourceNotes  string           // Detalle libre sobre los recursos
}

// Response modelo de respuesta con la reserva creada
type Response struct {
	ID             int64
	UserID         int64
	SpaceID        int64
	SpaceName      string
	StartAt        time.Time
	EndAt          time.Time
	Purpose        string
	AttendeesCount int
	Status         string
	StatusDisplay  string
	ResourceIDs    []int64
	ResourceNotes  string
	CreatedAt      time.Time
}
