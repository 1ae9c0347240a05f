package events

// DecideRequest cuerpo de POST /eventos/{eventId}/decidir
type DecideRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

// ServiceRequestUpdate cuerpo de POST /eventos/{eventId}/servicios
type ServiceRequestUpdate struct {
	ServiceRequestID int64  `json:"serviceRequestId"`
	Status           string `json:"status"`
	AssignedTo       *int64 `json:"assignedTo,omitempty"`
}
