package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ValidateItem valida una línea de factura: cantidad y precio unitario
// estrictamente positivos.
func ValidateItem(item *entity.InvoiceItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("%w: la línea requiere product_id", domain.ErrInvalidInput)
	}
	if !item.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !item.UnitPrice.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio unitario debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateTax valida un impuesto: tipo conocido y porcentaje en [0, 100].
func ValidateTax(tax *entity.TaxItem) error {
	switch tax.TaxType {
	case entity.TaxIVA, entity.TaxICA, entity.TaxRenta:
	default:
		return fmt.Errorf("%w: tipo de impuesto desconocido %q", domain.ErrInvalidInput, tax.TaxType)
	}
	if tax.Percentage.LessThan(decimal.Zero) || tax.Percentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: el porcentaje de impuesto debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

// CalculateTotals recalcula todos los valores derivados de la factura a partir
// del conjunto vigente de hijos, en un solo paso determinista:
//
//  1. Total de cada línea = cantidad × precio unitario.
//  2. Subtotal = suma de los totales de línea.
//  3. Amount de cada impuesto = subtotal × porcentaje / 100 — siempre contra
//     el subtotal recién calculado, nunca contra uno anterior.
//  4. Total = subtotal + suma de impuestos.
//
// Muta los hijos (Total y Amount) para que el llamador los persista junto con
// la cabecera. Es idempotente: con los mismos hijos produce los mismos valores.
func CalculateTotals(inv *entity.Invoice, items []*entity.InvoiceItem, taxes []*entity.TaxItem) {
	subtotal := decimal.Zero
	for _, item := range items {
		item.Total = item.Quantity.Mul(item.UnitPrice)
		subtotal = subtotal.Add(item.Total)
	}

	taxTotal := decimal.Zero
	for _, tax := range taxes {
		tax.Amount = subtotal.Mul(tax.Percentage).Div(hundred)
		taxTotal = taxTotal.Add(tax.Amount)
	}

	inv.Subtotal = subtotal
	inv.Total = subtotal.Add(taxTotal)
}
