package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/infrastructure/xmlexport"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func facturaDeMuestra() (*entity.Invoice, *entity.Company, []*entity.InvoiceItem, []*entity.TaxItem) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID:                           "inv-1",
		CompanyID:                    "emp-1",
		InternalID:                   "INV-emp-1-000007",
		InvoiceNumber:                "FV-emp-1-2026-0007",
		CustomerName:                 "Juan Pérez",
		CustomerEmail:                "juan@example.com",
		CustomerIdentificationType:   entity.IdentificationCC,
		CustomerIdentificationNumber: "123456",
		IssueDate:                    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		DueDate:                      &due,
		Status:                       entity.StatusEmitida,
		Subtotal:                     dec("250.00"),
		Total:                        dec("297.50"),
		Notes:                        "Entrega en obra",
	}
	company := &entity.Company{
		Name:    "Ferretería El Tornillo",
		Email:   "ventas@tornillo.co",
		Phone:   "3001234567",
		Address: "Calle 1 # 2-3",
	}
	items := []*entity.InvoiceItem{
		{ProductID: "p1", Description: "Martillo", Quantity: dec("2"), UnitPrice: dec("100"), Total: dec("200")},
		{ProductID: "p2", Description: "Destornillador", Quantity: dec("1"), UnitPrice: dec("50"), Total: dec("50")},
	}
	taxes := []*entity.TaxItem{
		{TaxType: entity.TaxIVA, Percentage: dec("19"), Amount: dec("47.50")},
	}
	return inv, company, items, taxes
}

func TestExportInvoiceXML_EstructuraCompleta(t *testing.T) {
	inv, company, items, taxes := facturaDeMuestra()

	out, err := xmlexport.NewExporter().ExportInvoiceXML(inv, company, items, taxes)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "el XML generado debe ser parseable")

	root := doc.SelectElement("Invoice")
	require.NotNil(t, root)

	assert.Equal(t, "INV-emp-1-000007", root.SelectElement("InternalID").Text())
	assert.Equal(t, "FV-emp-1-2026-0007", root.SelectElement("InvoiceNumber").Text())
	assert.Equal(t, "2026-08-30", root.SelectElement("IssueDate").Text())
	assert.Equal(t, "2026-09-15", root.SelectElement("DueDate").Text())
	assert.Equal(t, entity.StatusEmitida, root.SelectElement("Status").Text())

	supplier := root.SelectElement("Supplier")
	require.NotNil(t, supplier)
	assert.Equal(t, "Ferretería El Tornillo", supplier.SelectElement("Name").Text())

	customer := root.SelectElement("Customer")
	require.NotNil(t, customer)
	assert.Equal(t, "Juan Pérez", customer.SelectElement("Name").Text())
	identification := customer.SelectElement("Identification")
	require.NotNil(t, identification)
	assert.Equal(t, entity.IdentificationCC, identification.SelectAttrValue("type", ""))
	assert.Equal(t, "123456", identification.Text())

	lines := root.SelectElement("Lines").SelectElements("Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].SelectElement("ProductID").Text())
	assert.Equal(t, "200.00", lines[0].SelectElement("Total").Text())

	taxEls := root.SelectElement("Taxes").SelectElements("Tax")
	require.Len(t, taxEls, 1)
	assert.Equal(t, entity.TaxIVA, taxEls[0].SelectAttrValue("type", ""))
	assert.Equal(t, "47.50", taxEls[0].SelectElement("Amount").Text())

	totals := root.SelectElement("Totals")
	require.NotNil(t, totals)
	assert.Equal(t, "250.00", totals.SelectElement("Subtotal").Text())
	assert.Equal(t, "297.50", totals.SelectElement("Total").Text())

	assert.Equal(t, "Entrega en obra", root.SelectElement("Notes").Text())
}

func TestExportInvoiceXML_CamposOpcionalesAusentes(t *testing.T) {
	inv, company, items, taxes := facturaDeMuestra()
	inv.DueDate = nil
	inv.Notes = ""

	out, err := xmlexport.NewExporter().ExportInvoiceXML(inv, company, items, taxes)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("Invoice")
	require.NotNil(t, root)

	assert.Nil(t, root.SelectElement("DueDate"), "sin vencimiento no se emite DueDate")
	assert.Nil(t, root.SelectElement("Notes"), "sin notas no se emite Notes")
}
