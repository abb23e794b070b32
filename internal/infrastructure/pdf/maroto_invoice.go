// Package pdf implementa la representación gráfica de la factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Factura + Fecha + Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + identificación + contacto                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / impuestos por tipo / TOTAL              │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/plazave/plaza-api/internal/application/billing"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator construye el generador.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	company *entity.Company,
	items []*entity.InvoiceItem,
	taxes []*entity.TaxItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.InvoiceNumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(clienteRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(inv, taxes) {
		m.AddRows(r)
	}

	if inv.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(inv.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y número + fecha + estado (der).
func headerRow(inv *entity.Invoice, company *entity.Company) core.Row {
	fecha := inv.IssueDate.Format("02/01/2006")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InternalID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", fecha, inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos de contacto de la empresa emisora.
func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: snapshot del cliente tal como quedó en la factura.
func clienteRow(inv *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   Email: %s",
				inv.CustomerIdentificationType,
				inv.CustomerIdentificationNumber,
				nonEmpty(inv.CustomerEmail, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la factura.
func tableItemRows(items []*entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				item.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+item.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+item.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: subtotal, una fila por impuesto y el total final.
func totalsRows(inv *entity.Invoice, taxes []*entity.TaxItem) []core.Row {
	labeled := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		color := colorGray
		size := 9.0
		if bold {
			style = fontstyle.Bold
			color = colorPrimary
			size = 10
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: color,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 1, Color: color,
			})),
		)
	}

	rows := []core.Row{
		labeled("Subtotal:", "$"+inv.Subtotal.StringFixed(2), false),
	}
	for _, tax := range taxes {
		label := fmt.Sprintf("%s (%s%%):", tax.TaxType, tax.Percentage.String())
		rows = append(rows, labeled(label, "$"+tax.Amount.StringFixed(2), false))
	}
	rows = append(rows, labeled("TOTAL A PAGAR:", "$"+inv.Total.StringFixed(2), true))
	return rows
}

// notesRow: notas libres de la factura.
func notesRow(notes string) core.Row {
	height := 8 + 4*strings.Count(notes, "\n")
	return row.New(float64(height)).Add(
		col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
