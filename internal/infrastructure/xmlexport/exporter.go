// Package xmlexport genera la representación XML de una factura para
// integraciones contables externas.
package xmlexport

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/plazave/plaza-api/internal/application/billing"
	"github.com/plazave/plaza-api/internal/domain/entity"
)

var _ billing.InvoiceXMLExporter = (*Exporter)(nil)

// Exporter implementa billing.InvoiceXMLExporter usando etree.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportInvoiceXML serializa la factura completa: cabecera, emisor, cliente,
// líneas, impuestos y totales. La estructura es estable: los consumidores
// externos dependen de los nombres de estos elementos.
func (e *Exporter) ExportInvoiceXML(
	inv *entity.Invoice,
	company *entity.Company,
	items []*entity.InvoiceItem,
	taxes []*entity.TaxItem,
) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateElement("InternalID").SetText(inv.InternalID)
	root.CreateElement("InvoiceNumber").SetText(inv.InvoiceNumber)
	root.CreateElement("IssueDate").SetText(inv.IssueDate.Format("2006-01-02"))
	if inv.DueDate != nil {
		root.CreateElement("DueDate").SetText(inv.DueDate.Format("2006-01-02"))
	}
	root.CreateElement("Status").SetText(inv.Status)

	supplier := root.CreateElement("Supplier")
	supplier.CreateElement("Name").SetText(company.Name)
	supplier.CreateElement("Email").SetText(company.Email)
	supplier.CreateElement("Phone").SetText(company.Phone)
	supplier.CreateElement("Address").SetText(company.Address)

	customer := root.CreateElement("Customer")
	customer.CreateElement("Name").SetText(inv.CustomerName)
	customer.CreateElement("Email").SetText(inv.CustomerEmail)
	identification := customer.CreateElement("Identification")
	identification.CreateAttr("type", inv.CustomerIdentificationType)
	identification.SetText(inv.CustomerIdentificationNumber)

	lines := root.CreateElement("Lines")
	for _, item := range items {
		line := lines.CreateElement("Line")
		line.CreateElement("ProductID").SetText(item.ProductID)
		line.CreateElement("Description").SetText(item.Description)
		line.CreateElement("Quantity").SetText(item.Quantity.String())
		line.CreateElement("UnitPrice").SetText(item.UnitPrice.StringFixed(2))
		line.CreateElement("Total").SetText(item.Total.StringFixed(2))
	}

	taxesEl := root.CreateElement("Taxes")
	for _, tax := range taxes {
		taxEl := taxesEl.CreateElement("Tax")
		taxEl.CreateAttr("type", tax.TaxType)
		taxEl.CreateElement("Percentage").SetText(tax.Percentage.String())
		taxEl.CreateElement("Amount").SetText(tax.Amount.StringFixed(2))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Subtotal").SetText(inv.Subtotal.StringFixed(2))
	totals.CreateElement("Total").SetText(inv.Total.StringFixed(2))

	if inv.Notes != "" {
		root.CreateElement("Notes").SetText(inv.Notes)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar factura: %w", err)
	}
	return out, nil
}
