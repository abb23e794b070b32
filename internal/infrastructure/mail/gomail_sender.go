// Package mail implementa el envío SMTP de las notificaciones del outbox.
package mail

import (
	"encoding/json"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/plazave/plaza-api/internal/application/notifier"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/pkg/config"
)

var _ notifier.Mailer = (*GomailSender)(nil)

// GomailSender implementa notifier.Mailer sobre SMTP.
type GomailSender struct {
	cfg config.SMTPConfig
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// Send arma y envía el correo de un mensaje del outbox. El cuerpo del mensaje
// es el payload JSON escrito en la transición; aquí se vuelve texto legible.
func (s *GomailSender) Send(msg *entity.OutboxMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.Recipient)
	if msg.CC != "" {
		m.SetHeader("Cc", msg.CC)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", renderBody(msg))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}

func renderBody(msg *entity.OutboxMessage) string {
	var payload map[string]string
	if err := json.Unmarshal([]byte(msg.Body), &payload); err != nil {
		return msg.Body
	}
	return fmt.Sprintf(
		"Estimado/a %s,\n\n%s ha emitido la factura %s por un total de $%s.\n\nReferencia interna: %s\n",
		payload["customer_name"],
		payload["company_name"],
		payload["invoice_number"],
		payload["total"],
		payload["internal_id"],
	)
}
