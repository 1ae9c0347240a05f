package domain

// Formatos de fecha y hora usados en la API y los reportes
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // para reportes CSV
)

// Límites de campos de texto
const (
	MaxPurposeLength      = 250
	MaxCancelReasonLength = 255
	MaxNotificationLength = 300
)

// Valores por defecto de la grilla de bloques
const (
	DefaultSlotIntervalMin      = 30
	DefaultDayStart             = "08:30"
	DefaultDayEnd               = "22:00"
	DefaultMinCancelWindowHours = 2
)
