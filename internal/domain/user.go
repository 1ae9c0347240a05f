package domain

import "strings"

// Nombres de grupos con significado en el sistema
const (
	GroupCoordinator = "Coordinador"
)

// User usuario institucional. La autenticación vive fuera de este
// servicio; aquí solo se consulta para permisos y notificaciones.
type User struct {
	ID            int64
	Username      string
	FirstName     string
	LastName      string
	Email         string
	IsStaff       bool
	IsActive      bool
	ReceiveEmails bool
	Groups        []string
}

// InGroup indica si el usuario pertenece al grupo indicado
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// IsCoordinator pertenece al grupo 'Coordinador'
func (u *User) IsCoordinator() bool {
	return u.InGroup(GroupCoordinator)
}

// CanExportReports puede exportar reportes: administrador (staff) o coordinador
func (u *User) CanExportReports() bool {
	return u.IsStaff || u.IsCoordinator()
}

// DisplayName "Nombre Apellido (username)" para reportes
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full + " (" + u.Username + ")"
}
