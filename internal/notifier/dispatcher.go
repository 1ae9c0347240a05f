// Package notifier despacho de notificaciones del sistema: fila
// interna por destinatario más correo opcional. La fila interna es
// la fuente de verdad; el correo es best-effort y sus fallos solo
// se registran en el log.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

const mailSubject = "Reservas INACAP: nueva notificación"

// Dispatcher resuelve destinatarios y reparte notificaciones
type Dispatcher struct {
	users         UserRepository
	notifications NotificationRepository
	mailer        Mailer
	logger        Logger

	allowedDomains []string
	emailGroups    bool
}

// NewDispatcher crea el despachador. allowedDomains limita los
// correos salientes a casillas institucionales; emailGroups habilita
// el correo para las notificaciones a grupos (la fila interna se
// crea siempre).
func NewDispatcher(
	users UserRepository,
	notifications NotificationRepository,
	mailer Mailer,
	logger Logger,
	allowedDomains []string,
	emailGroups bool,
) *Dispatcher {
	return &Dispatcher{
		users:          users,
		notifications:  notifications,
		mailer:         mailer,
		logger:         logger,
		allowedDomains: allowedDomains,
		emailGroups:    emailGroups,
	}
}

// NotifyUser notifica a un usuario puntual
func (d *Dispatcher) NotifyUser(ctx context.Context, userID int64, message string) error {
	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notifier: resolve user %d: %w", userID, err)
	}
	return d.dispatch(ctx, []*domain.User{u}, message, true)
}

// NotifyStaff notifica a todo el staff activo
func (d *Dispatcher) NotifyStaff(ctx context.Context, message string) error {
	users, err := d.users.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("notifier: resolve staff: %w", err)
	}
	return d.dispatch(ctx, users, message, true)
}

// NotifyGroup notifica a los miembros de un grupo. Un grupo
// desconocido resuelve a cero destinatarios y no es un error.
func (d *Dispatcher) NotifyGroup(ctx context.Context, group string, message string) error {
	users, err := d.users.ListByGroup(ctx, group)
	if err != nil {
		return fmt.Errorf("notifier: resolve group %q: %w", group, err)
	}
	if len(users) == 0 {
		d.logger.Warn("notifier: group %q has no active members, nothing dispatched", group)
		return nil
	}
	return d.dispatch(ctx, users, message, d.emailGroups)
}

func (d *Dispatcher) dispatch(ctx context.Context, recipients []*domain.User, message string, withEmail bool) error {
	if len(recipients) == 0 {
		return nil
	}

	message = truncate(message, domain.MaxNotificationLength)

	userIDs := make([]int64, 0, len(recipients))
	for _, u := range recipients {
		userIDs = append(userIDs, u.ID)
	}
	if err := d.notifications.CreateBatch(ctx, userIDs, message); err != nil {
		return fmt.Errorf("notifier: persist notifications: %w", err)
	}

	if !withEmail {
		return nil
	}

	emails := d.mailableAddresses(recipients)
	if len(emails) == 0 {
		return nil
	}
	if err := d.mailer.Send(ctx, emails, mailSubject, message); err != nil {
		// best-effort: el correo nunca hace fallar la operación
		d.logger.Warn("notifier: email delivery failed for %d recipients: %v", len(emails), err)
	} else {
		d.logger.Info("notifier: email sent to %d recipients", len(emails))
	}
	return nil
}

// mailableAddresses filtra destinatarios que aceptan correo y cuya
// casilla pertenece a un dominio institucional permitido.
func (d *Dispatcher) mailableAddresses(recipients []*domain.User) []string {
	out := make([]string, 0, len(recipients))
	for _, u := range recipients {
		if !u.ReceiveEmails || u.Email == "" {
			continue
		}
		if !d.domainAllowed(u.Email) {
			d.logger.Warn("notifier: skipping non-institutional address for user %d", u.ID)
			continue
		}
		out = append(out, u.Email)
	}
	return out
}

func (d *Dispatcher) domainAllowed(email string) bool {
	if len(d.allowedDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domainPart := strings.ToLower(email[at+1:])
	for _, allowed := range d.allowedDomains {
		if domainPart == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
