package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo outbox transaccional de notificaciones. Create se invoca con la
// tx de la transición de estado; el despachador usa el pool.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador del outbox.
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

// Create persiste un mensaje pendiente.
func (r *OutboxRepo) Create(msg *entity.OutboxMessage) error {
	query := `
		INSERT INTO outbox_messages (id, company_id, invoice_id, kind, recipient, cc, subject, body, status, attempts, last_error, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.CompanyID, msg.InvoiceID, msg.Kind, msg.Recipient, msg.CC,
		msg.Subject, msg.Body, msg.Status, msg.Attempts, msg.LastError, msg.CreatedAt, msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

// ListPending devuelve mensajes PENDIENTE en orden de creación.
func (r *OutboxRepo) ListPending(limit int) ([]*entity.OutboxMessage, error) {
	query := `
		SELECT id, company_id, invoice_id, kind, recipient, cc, subject, body, status, attempts, last_error, created_at, sent_at
		FROM outbox_messages WHERE status = $1 ORDER BY created_at LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.OutboxPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox: %w", err)
	}
	defer rows.Close()

	var messages []*entity.OutboxMessage
	for rows.Next() {
		var msg entity.OutboxMessage
		if err := rows.Scan(
			&msg.ID, &msg.CompanyID, &msg.InvoiceID, &msg.Kind, &msg.Recipient, &msg.CC,
			&msg.Subject, &msg.Body, &msg.Status, &msg.Attempts, &msg.LastError, &msg.CreatedAt, &msg.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// MarkSent marca el mensaje como ENVIADO.
func (r *OutboxRepo) MarkSent(id string, sentAt time.Time) error {
	query := `UPDATE outbox_messages SET status = $2, sent_at = $3, attempts = attempts + 1 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, entity.OutboxSent, sentAt); err != nil {
		return fmt.Errorf("mark outbox sent: %w", err)
	}
	return nil
}

// MarkFailed incrementa los intentos y registra el último error. Con
// final=true el mensaje pasa a ERROR y deja de reintentarse.
func (r *OutboxRepo) MarkFailed(id string, lastError string, final bool) error {
	status := entity.OutboxPending
	if final {
		status = entity.OutboxError
	}
	query := `UPDATE outbox_messages SET status = $2, last_error = $3, attempts = attempts + 1 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status, lastError); err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}
