package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plazave/plaza-api/internal/application/billing"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice inicia una transacción, ejecuta fn con los repos de facturación
// atados a la tx y hace Commit o Rollback. Numeración, factura y outbox
// quedan en la misma transacción.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	invRepo repository.InvoiceRepository,
	seqRepo repository.SequenceRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInvoiceRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	outboxRepo := NewOutboxRepository(tx)

	if err := fn(invRepo, seqRepo, outboxRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
