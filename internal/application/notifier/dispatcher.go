package notifier

import (
	"context"
	"time"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
	"github.com/plazave/plaza-api/pkg/logger"
)

// Mailer envía un mensaje ya armado. La implementación SMTP vive en
// infraestructura (ver infrastructure/mail).
type Mailer interface {
	Send(msg *entity.OutboxMessage) error
}

// Dispatcher drena el outbox de notificaciones en segundo plano. Cada tick
// toma un lote de mensajes PENDIENTE, los envía y marca el resultado. Un
// mensaje que agota los reintentos queda en ERROR y deja de reintentarse;
// la transición de la factura ya fue confirmada y nunca se ve afectada.
type Dispatcher struct {
	outboxRepo  repository.OutboxRepository
	mailer      Mailer
	log         *logger.Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

// NewDispatcher construye el despachador con valores razonables por defecto.
func NewDispatcher(outboxRepo repository.OutboxRepository, mailer Mailer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		outboxRepo:  outboxRepo,
		mailer:      mailer,
		log:         log,
		interval:    15 * time.Second,
		batchSize:   25,
		maxAttempts: 5,
	}
}

// Run procesa el outbox hasta que el contexto se cancele. Pensado para
// ejecutarse en una goroutine propia desde main.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("despachador de notificaciones detenido")
			return
		case <-ticker.C:
			d.DispatchPending(ctx)
		}
	}
}

// DispatchPending procesa un lote de mensajes pendientes. Expuesto aparte de
// Run para poder invocarlo de forma directa en pruebas.
func (d *Dispatcher) DispatchPending(ctx context.Context) {
	pending, err := d.outboxRepo.ListPending(d.batchSize)
	if err != nil {
		d.log.Error().Err(err).Msg("listar outbox pendiente")
		return
	}
	for _, msg := range pending {
		if ctx.Err() != nil {
			return
		}
		d.dispatch(msg)
	}
}

func (d *Dispatcher) dispatch(msg *entity.OutboxMessage) {
	if sendErr := d.mailer.Send(msg); sendErr != nil {
		attempts := msg.Attempts + 1
		final := attempts >= d.maxAttempts
		d.log.Warn().
			Err(sendErr).
			Str("outbox_id", msg.ID).
			Str("invoice_id", msg.InvoiceID).
			Int("attempts", attempts).
			Bool("final", final).
			Msg("fallo de envío de notificación")
		if err := d.outboxRepo.MarkFailed(msg.ID, sendErr.Error(), final); err != nil {
			d.log.Error().Err(err).Str("outbox_id", msg.ID).Msg("registrar fallo en outbox")
		}
		return
	}
	if err := d.outboxRepo.MarkSent(msg.ID, time.Now()); err != nil {
		d.log.Error().Err(err).Str("outbox_id", msg.ID).Msg("marcar outbox como ENVIADO")
		return
	}
	d.log.Info().
		Str("outbox_id", msg.ID).
		Str("invoice_id", msg.InvoiceID).
		Str("recipient", msg.Recipient).
		Msg("notificación enviada")
}
