// Package mailer transporte SMTP para los correos de notificación.
// Todo envío es best-effort: el despachador registra el error y sigue.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/lxo898/reservas-inacap/internal/config"
)

// ErrDisabled se retorna cuando el transporte SMTP está deshabilitado
var ErrDisabled = errors.New("mailer: smtp transport disabled")

// Mailer envía correos en texto plano usando go-mail
type Mailer struct {
	client  *mail.Client
	from    string
	enabled bool
}

// New construye el transporte desde la configuración. Con SMTP
// deshabilitado retorna un mailer inerte cuyo Send falla con
// ErrDisabled; el despachador lo trata como cualquier otro fallo.
func New(cfg config.SMTPConfig) (*Mailer, error) {
	if !cfg.Enabled {
		return &Mailer{enabled: false}, nil
	}

	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: init smtp client: %w", err)
	}

	return &Mailer{
		client:  client,
		from:    cfg.From,
		enabled: true,
	}, nil
}

// Send envía un correo de texto plano a los destinatarios indicados
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	if !m.enabled {
		return ErrDisabled
	}
	if len(to) == 0 {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mailer: set from: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("mailer: set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
