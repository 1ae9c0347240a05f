package cancel_reservation

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID   int64  `json:"reservationId"`
	Status          string `json:"status"`
	StatusDisplay   string `json:"statusDisplay"`
	AlreadyCanceled bool   `json:"alreadyCanceled"`
}
