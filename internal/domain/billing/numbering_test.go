package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/billing"
)

func TestFormatInternalID(t *testing.T) {
	assert.Equal(t, "INV-empresa-1-000001", billing.FormatInternalID("empresa-1", 1))
	assert.Equal(t, "INV-empresa-1-001234", billing.FormatInternalID("empresa-1", 1234))
	// Más de seis dígitos: el número crece sin truncarse.
	assert.Equal(t, "INV-e-1000000", billing.FormatInternalID("e", 1000000))
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FV-empresa-1-2026-0001", billing.FormatInvoiceNumber("empresa-1", 2026, 1))
	assert.Equal(t, "FV-empresa-1-2026-0042", billing.FormatInvoiceNumber("empresa-1", 2026, 42))
}

// Dos empresas con la misma secuencia y año producen números distintos: la
// empresa viaja dentro del número.
func TestFormatInvoiceNumber_UnicidadEntreEmpresas(t *testing.T) {
	a := billing.FormatInvoiceNumber("empresa-a", 2026, 7)
	b := billing.FormatInvoiceNumber("empresa-b", 2026, 7)
	assert.NotEqual(t, a, b)
}

func TestParseInternalSeq(t *testing.T) {
	seq, err := billing.ParseInternalSeq(billing.FormatInternalID("empresa-1", 123))
	require.NoError(t, err)
	assert.Equal(t, int64(123), seq)

	_, err = billing.ParseInternalSeq("sin-numero-")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.ParseInternalSeq("basura")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
