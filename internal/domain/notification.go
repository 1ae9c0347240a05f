package domain

import "time"

// Notification aviso interno para un usuario. Best-effort:
// no hay garantía de entrega ni reintentos.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
