package domain

import "time"

// EventStatus estado de un evento institucional
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPending   EventStatus = "PEND"
	EventApproved  EventStatus = "APPR"
	EventPublished EventStatus = "PUB"
	EventDone      EventStatus = "DONE"
	EventCanceled  EventStatus = "CANC"
)

// IsValid indica si el estado del evento es conocido
func (s EventStatus) IsValid() bool {
	switch s {
	case EventDraft, EventPending, EventApproved, EventPublished, EventDone, EventCanceled:
		return true
	}
	return false
}

// EventType tipo de evento
type EventType string

const (
	EventAcademic EventType = "ACA"
	EventOutreach EventType = "DIF"
	EventSports   EventType = "DEP"
	EventCultural EventType = "CUL"
	EventOther    EventType = "OTR"
)

// IsValid indica si el tipo de evento es conocido
func (t EventType) IsValid() bool {
	switch t {
	case EventAcademic, EventOutreach, EventSports, EventCultural, EventOther:
		return true
	}
	return false
}

// EventVisibility visibilidad del evento
type EventVisibility string

const (
	VisibilityPrivate  EventVisibility = "PRIV"
	VisibilityInternal EventVisibility = "INT"
	VisibilityPublic   EventVisibility = "PUB"
)

// IsValid indica si la visibilidad es conocida
func (v EventVisibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityInternal || v == VisibilityPublic
}

// Event evento institucional: puede bloquear uno o más espacios
// con bloques horarios propios.
type Event struct {
	ID                   int64
	Title                string
	Type                 EventType
	OrganizerID          int64
	Sede                 string
	ExpectedAttendance   int
	Visibility           EventVisibility
	RequiresRegistration bool
	Notes                string
	Status               EventStatus
	CreatedAt            time.Time

	Blocks   []EventSpace
	Services []EventServiceRequest
}

// IsActive el evento bloquea espacios (pendiente, aprobado o publicado)
func (e *Event) IsActive() bool {
	return e.Status == EventPending || e.Status == EventApproved || e.Status == EventPublished
}

// EventSpace bloque horario de un espacio asignado al evento.
// Los buffers de montaje/desmontaje amplían la ventana bloqueada.
type EventSpace struct {
	ID              int64
	EventID         int64
	SpaceID         int64
	StartAt         time.Time
	EndAt           time.Time
	Setup           string
	BufferBeforeMin int
	BufferAfterMin  int

	SpaceName string
}

// BlockedRange rango efectivamente bloqueado, buffers incluidos
func (b *EventSpace) BlockedRange() (time.Time, time.Time) {
	start := b.StartAt.Add(-time.Duration(b.BufferBeforeMin) * time.Minute)
	end := b.EndAt.Add(time.Duration(b.BufferAfterMin) * time.Minute)
	return start, end
}

// ServiceArea área operativa que recibe órdenes de trabajo
type ServiceArea string

const (
	AreaCleaning ServiceArea = "ASEO"
	AreaSecurity ServiceArea = "SEG"
	AreaAV       ServiceArea = "AV"
	AreaCatering ServiceArea = "CAT"
)

// IsValid indica si el área es conocida
func (a ServiceArea) IsValid() bool {
	return a == AreaCleaning || a == AreaSecurity || a == AreaAV || a == AreaCatering
}

// ServiceStatus estado de una orden de trabajo
type ServiceStatus string

const (
	ServicePending    ServiceStatus = "PEND"
	ServiceInProgress ServiceStatus = "DO"
	ServiceDone       ServiceStatus = "DONE"
)

// EventServiceRequest orden de trabajo para logística asociada a un evento
type EventServiceRequest struct {
	ID         int64
	EventID    int64
	Area       ServiceArea
	Detail     string
	DueAt      *time.Time
	Status     ServiceStatus
	AssignedTo *int64
}

// EventApproval registro de aprobación/rechazo de un evento.
// A diferencia de las reservas, el historial es append-only.
type EventApproval struct {
	ID         int64
	EventID    int64
	ApproverID int64
	Decision   Decision
	Notes      string
	DecidedAt  time.Time
}
