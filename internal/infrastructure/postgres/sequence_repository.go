package postgres

import (
	"context"
	"fmt"

	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de numeración por empresa. Pasar la tx de creación de
// la factura: el avance y la factura deben confirmarse juntos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador del contador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next avanza y devuelve el contador de la empresa de forma atómica. El upsert
// con RETURNING elimina la carrera leer-luego-incrementar: dos transacciones
// concurrentes serializan sobre la fila del contador y obtienen valores
// distintos.
func (r *SequenceRepo) Next(companyID string) (int64, error) {
	const query = `
		INSERT INTO invoice_sequences (company_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var next int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return next, nil
}
