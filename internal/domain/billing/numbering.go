package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plazave/plaza-api/internal/domain"
)

// FormatInternalID construye el ID interno secuencial por empresa.
// Ej: FormatInternalID("T", 1) → "INV-T-000001".
func FormatInternalID(companyID string, seq int64) string {
	return fmt.Sprintf("INV-%s-%06d", companyID, seq)
}

// FormatInvoiceNumber construye el número de factura visible al cliente.
// Incluye la empresa para que la unicidad global quede garantizada aunque
// dos empresas compartan secuencia y año.
// Ej: FormatInvoiceNumber("T", 2026, 1) → "FV-T-2026-0001".
func FormatInvoiceNumber(companyID string, year int, seq int64) string {
	return fmt.Sprintf("FV-%s-%d-%04d", companyID, year, seq)
}

// ParseInternalSeq extrae el número de secuencia del tramo final de un ID
// interno ("INV-<empresa>-000123" → 123).
func ParseInternalSeq(internalID string) (int64, error) {
	idx := strings.LastIndex(internalID, "-")
	if idx < 0 || idx == len(internalID)-1 {
		return 0, fmt.Errorf("%w: id interno malformado %q", domain.ErrInvalidInput, internalID)
	}
	seq, err := strconv.ParseInt(internalID[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id interno malformado %q", domain.ErrInvalidInput, internalID)
	}
	return seq, nil
}
