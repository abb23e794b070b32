package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/billing"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(qty, price string) *entity.InvoiceItem {
	return &entity.InvoiceItem{
		ProductID: "p1",
		Quantity:  dec(qty),
		UnitPrice: dec(price),
	}
}

func tax(tipo, pct string) *entity.TaxItem {
	return &entity.TaxItem{TaxType: tipo, Percentage: dec(pct)}
}

// Caso base: dos líneas y un IVA del 19%.
func TestCalculateTotals_CasoBase(t *testing.T) {
	inv := &entity.Invoice{}
	items := []*entity.InvoiceItem{
		item("2", "100.00"), // 200.00
		item("3", "50.00"),  // 150.00
	}
	taxes := []*entity.TaxItem{tax(entity.TaxIVA, "19")}

	billing.CalculateTotals(inv, items, taxes)

	assert.True(t, inv.Subtotal.Equal(dec("350.00")), "subtotal = %s", inv.Subtotal)
	assert.True(t, taxes[0].Amount.Equal(dec("66.50")), "iva = %s", taxes[0].Amount)
	assert.True(t, inv.Total.Equal(dec("416.50")), "total = %s", inv.Total)
	assert.True(t, items[0].Total.Equal(dec("200.00")))
	assert.True(t, items[1].Total.Equal(dec("150.00")))
}

// Sin hijos todo queda en cero.
func TestCalculateTotals_SinHijos(t *testing.T) {
	inv := &entity.Invoice{}
	billing.CalculateTotals(inv, nil, nil)
	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.Total.IsZero())
}

// Varios impuestos: todos se calculan contra el mismo subtotal.
func TestCalculateTotals_VariosImpuestos(t *testing.T) {
	inv := &entity.Invoice{}
	items := []*entity.InvoiceItem{item("1", "1000.00")}
	taxes := []*entity.TaxItem{
		tax(entity.TaxIVA, "19"),   // 190.00
		tax(entity.TaxICA, "1.5"),  // 15.00
		tax(entity.TaxRenta, "11"), // 110.00
	}

	billing.CalculateTotals(inv, items, taxes)

	assert.True(t, taxes[0].Amount.Equal(dec("190.00")))
	assert.True(t, taxes[1].Amount.Equal(dec("15.00")))
	assert.True(t, taxes[2].Amount.Equal(dec("110.00")))
	assert.True(t, inv.Total.Equal(dec("1315.00")))
}

// Tras cambiar una línea, un nuevo recálculo reajusta el monto de TODOS los
// impuestos al subtotal vigente. Nunca queda un monto calculado sobre un
// subtotal anterior.
func TestCalculateTotals_ImpuestoSigueAlSubtotal(t *testing.T) {
	inv := &entity.Invoice{}
	it := item("2", "100.00")
	iva := tax(entity.TaxIVA, "19")

	billing.CalculateTotals(inv, []*entity.InvoiceItem{it}, []*entity.TaxItem{iva})
	require.True(t, iva.Amount.Equal(dec("38.00")))

	// La línea cambia de cantidad; el impuesto debe seguir al nuevo subtotal.
	it.Quantity = dec("5")
	billing.CalculateTotals(inv, []*entity.InvoiceItem{it}, []*entity.TaxItem{iva})

	assert.True(t, inv.Subtotal.Equal(dec("500.00")))
	assert.True(t, iva.Amount.Equal(dec("95.00")), "el IVA debe recalcularse contra el subtotal nuevo")
	assert.True(t, inv.Total.Equal(dec("595.00")))
}

// Idempotencia: recalcular sin cambios no altera ningún valor.
func TestCalculateTotals_Idempotente(t *testing.T) {
	inv := &entity.Invoice{}
	items := []*entity.InvoiceItem{item("3", "33.33")}
	taxes := []*entity.TaxItem{tax(entity.TaxIVA, "19")}

	billing.CalculateTotals(inv, items, taxes)
	subtotal, total, amount := inv.Subtotal, inv.Total, taxes[0].Amount

	billing.CalculateTotals(inv, items, taxes)

	assert.True(t, inv.Subtotal.Equal(subtotal))
	assert.True(t, inv.Total.Equal(total))
	assert.True(t, taxes[0].Amount.Equal(amount))
}

// Propiedad: subtotal = Σ líneas y total = subtotal + Σ impuestos, en decimal.
func TestCalculateTotals_SumasConsistentes(t *testing.T) {
	inv := &entity.Invoice{}
	items := []*entity.InvoiceItem{
		item("1.5", "19.99"),
		item("7", "0.01"),
		item("1000", "2.50"),
	}
	taxes := []*entity.TaxItem{tax(entity.TaxIVA, "19"), tax(entity.TaxICA, "0.966")}

	billing.CalculateTotals(inv, items, taxes)

	sumaLineas := decimal.Zero
	for _, it := range items {
		sumaLineas = sumaLineas.Add(it.Total)
	}
	sumaImpuestos := decimal.Zero
	for _, tx := range taxes {
		sumaImpuestos = sumaImpuestos.Add(tx.Amount)
	}
	assert.True(t, inv.Subtotal.Equal(sumaLineas))
	assert.True(t, inv.Total.Equal(inv.Subtotal.Add(sumaImpuestos)))
}

func TestValidateItem(t *testing.T) {
	assert.NoError(t, billing.ValidateItem(item("1", "0.01")))

	err := billing.ValidateItem(item("0", "10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	err = billing.ValidateItem(item("-1", "10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	err = billing.ValidateItem(item("1", "0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio cero")

	sinProducto := item("1", "10")
	sinProducto.ProductID = ""
	assert.ErrorIs(t, billing.ValidateItem(sinProducto), domain.ErrInvalidInput)
}

func TestValidateTax(t *testing.T) {
	assert.NoError(t, billing.ValidateTax(tax(entity.TaxIVA, "0")))
	assert.NoError(t, billing.ValidateTax(tax(entity.TaxICA, "100")))

	err := billing.ValidateTax(tax("PREDIAL", "10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	err = billing.ValidateTax(tax(entity.TaxIVA, "-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje negativo")

	err = billing.ValidateTax(tax(entity.TaxIVA, "100.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje mayor a 100")
}
