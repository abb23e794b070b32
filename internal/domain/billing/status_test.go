package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/billing"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

// La máquina de estados completa: cada par (from, to) con su veredicto.
func TestCanTransition_TablaCompleta(t *testing.T) {
	estados := []string{
		entity.StatusBorrador, entity.StatusEmitida,
		entity.StatusPagada, entity.StatusAnulada,
	}
	permitidas := map[[2]string]bool{
		{entity.StatusBorrador, entity.StatusEmitida}: true,
		{entity.StatusBorrador, entity.StatusAnulada}: true,
		{entity.StatusEmitida, entity.StatusPagada}:   true,
		{entity.StatusEmitida, entity.StatusAnulada}:  true,
	}

	for _, from := range estados {
		for _, to := range estados {
			err := billing.CanTransition(from, to)
			if permitidas[[2]string{from, to}] {
				assert.NoError(t, err, "%s → %s debe permitirse", from, to)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s → %s debe rechazarse", from, to)
			}
		}
	}
}

// Una factura pagada no puede anularse: PAGADA es terminal.
func TestCanTransition_PagadaNoSeAnula(t *testing.T) {
	err := billing.CanTransition(entity.StatusPagada, entity.StatusAnulada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Un estado desconocido se rechaza antes de consultar la tabla.
func TestCanTransition_EstadoDesconocido(t *testing.T) {
	err := billing.CanTransition(entity.StatusBorrador, "PENDIENTE")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	err = billing.CanTransition("LIMBO", entity.StatusEmitida)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, billing.IsTerminal(entity.StatusPagada))
	assert.True(t, billing.IsTerminal(entity.StatusAnulada))
	assert.False(t, billing.IsTerminal(entity.StatusBorrador))
	assert.False(t, billing.IsTerminal(entity.StatusEmitida))
	assert.False(t, billing.IsTerminal("LIMBO"))
}
