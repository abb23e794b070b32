package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazave/plaza-api/internal/application/notifier"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

// fakeOutbox simula la tabla de outbox: MarkFailed incrementa intentos y solo
// con final=true saca el mensaje de la cola de pendientes.
type fakeOutbox struct {
	messages []*entity.OutboxMessage
}

func (f *fakeOutbox) Create(msg *entity.OutboxMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeOutbox) ListPending(limit int) ([]*entity.OutboxMessage, error) {
	var out []*entity.OutboxMessage
	for _, msg := range f.messages {
		if msg.Status == entity.OutboxPending && len(out) < limit {
			cp := *msg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOutbox) MarkSent(id string, sentAt time.Time) error {
	msg := f.byID(id)
	msg.Status = entity.OutboxSent
	msg.Attempts++
	msg.SentAt = &sentAt
	return nil
}

func (f *fakeOutbox) MarkFailed(id string, lastError string, final bool) error {
	msg := f.byID(id)
	msg.Attempts++
	msg.LastError = lastError
	if final {
		msg.Status = entity.OutboxError
	}
	return nil
}

func (f *fakeOutbox) byID(id string) *entity.OutboxMessage {
	for _, msg := range f.messages {
		if msg.ID == id {
			return msg
		}
	}
	panic("mensaje desconocido: " + id)
}

// fakeMailer falla las primeras failUntil llamadas y luego envía.
type fakeMailer struct {
	calls     int
	failUntil int
	sent      []string
}

func (m *fakeMailer) Send(msg *entity.OutboxMessage) error {
	m.calls++
	if m.calls <= m.failUntil {
		return errors.New("smtp: conexión rechazada")
	}
	m.sent = append(m.sent, msg.ID)
	return nil
}

func pendingMsg(id string) *entity.OutboxMessage {
	return &entity.OutboxMessage{
		ID:        id,
		InvoiceID: "inv-1",
		Kind:      entity.OutboxKindInvoiceIssued,
		Recipient: "cliente@example.com",
		Subject:   "Factura FV-emp-1-2026-0001 emitida",
		Body:      `{"invoice_number":"FV-emp-1-2026-0001"}`,
		Status:    entity.OutboxPending,
		CreatedAt: time.Now(),
	}
}

func buildDispatcher(t *testing.T, outbox *fakeOutbox, mailer *fakeMailer) *notifier.Dispatcher {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return notifier.NewDispatcher(outbox, mailer, log)
}

// ── Pruebas ───────────────────────────────────────────────────────────────────

func TestDispatchPending_EnvioExitoso(t *testing.T) {
	outbox := &fakeOutbox{messages: []*entity.OutboxMessage{pendingMsg("m1"), pendingMsg("m2")}}
	mailer := &fakeMailer{}
	d := buildDispatcher(t, outbox, mailer)

	d.DispatchPending(context.Background())

	assert.Equal(t, []string{"m1", "m2"}, mailer.sent)
	for _, msg := range outbox.messages {
		assert.Equal(t, entity.OutboxSent, msg.Status)
		require.NotNil(t, msg.SentAt)
	}
	// Nada queda pendiente para el siguiente tick.
	pending, err := outbox.ListPending(25)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDispatchPending_FalloIncrementaIntentos(t *testing.T) {
	outbox := &fakeOutbox{messages: []*entity.OutboxMessage{pendingMsg("m1")}}
	mailer := &fakeMailer{failUntil: 1}
	d := buildDispatcher(t, outbox, mailer)

	d.DispatchPending(context.Background())

	msg := outbox.messages[0]
	assert.Equal(t, entity.OutboxPending, msg.Status, "sigue pendiente para reintento")
	assert.Equal(t, 1, msg.Attempts)
	assert.Contains(t, msg.LastError, "smtp")

	// El siguiente tick lo reintenta y esta vez sale.
	d.DispatchPending(context.Background())
	assert.Equal(t, entity.OutboxSent, msg.Status)
}

func TestDispatchPending_AgotaReintentosYQuedaEnError(t *testing.T) {
	outbox := &fakeOutbox{messages: []*entity.OutboxMessage{pendingMsg("m1")}}
	mailer := &fakeMailer{failUntil: 100} // nunca envía
	d := buildDispatcher(t, outbox, mailer)

	// Cinco ticks: al quinto intento el mensaje pasa a ERROR.
	for i := 0; i < 5; i++ {
		d.DispatchPending(context.Background())
	}

	msg := outbox.messages[0]
	assert.Equal(t, entity.OutboxError, msg.Status)
	assert.Equal(t, 5, msg.Attempts)

	// En ERROR deja de reintentarse.
	llamadas := mailer.calls
	d.DispatchPending(context.Background())
	assert.Equal(t, llamadas, mailer.calls)
}

func TestDispatchPending_ContextoCancelado(t *testing.T) {
	outbox := &fakeOutbox{messages: []*entity.OutboxMessage{pendingMsg("m1")}}
	mailer := &fakeMailer{}
	d := buildDispatcher(t, outbox, mailer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.DispatchPending(ctx)

	assert.Empty(t, mailer.sent)
	assert.Equal(t, entity.OutboxPending, outbox.messages[0].Status)
}
