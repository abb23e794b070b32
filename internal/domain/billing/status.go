// Package billing contiene la lógica pura de facturación: máquina de estados,
// cálculo de totales y numeración. No depende de persistencia ni de HTTP.
package billing

import (
	"fmt"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

// transitions define las transiciones legales del ciclo de vida:
//
//	BORRADOR → EMITIDA → PAGADA
//	BORRADOR → ANULADA
//	EMITIDA  → ANULADA
//
// PAGADA y ANULADA son terminales. Una factura pagada no puede anularse.
var transitions = map[string][]string{
	entity.StatusBorrador: {entity.StatusEmitida, entity.StatusAnulada},
	entity.StatusEmitida:  {entity.StatusPagada, entity.StatusAnulada},
	entity.StatusPagada:   {},
	entity.StatusAnulada:  {},
}

// ValidStatus indica si s pertenece al conjunto de estados conocidos.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal indica si desde s no existe ninguna transición.
func IsTerminal(s string) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}

// CanTransition valida la transición from → to.
// Retorna ErrInvalidStatus si to no es un estado conocido y
// ErrInvalidTransition si la transición no está permitida por la tabla.
func CanTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, to)
	}
	if !ValidStatus(from) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, from)
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
}
