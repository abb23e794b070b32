package billing

import (
	"context"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Numeración, escritura de la factura y outbox comparten la misma transacción:
// o se confirma todo o no se confirma nada.
type TxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		invRepo repository.InvoiceRepository,
		seqRepo repository.SequenceRepository,
		outboxRepo repository.OutboxRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
// Consumidor de solo lectura: nunca modifica el estado de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		inv *entity.Invoice,
		company *entity.Company,
		items []*entity.InvoiceItem,
		taxes []*entity.TaxItem,
	) ([]byte, error)
}

// InvoiceXMLExporter genera la representación XML de una factura.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(
		inv *entity.Invoice,
		company *entity.Company,
		items []*entity.InvoiceItem,
		taxes []*entity.TaxItem,
	) ([]byte, error)
}
