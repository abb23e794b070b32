package billing

import (
	"context"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

// RenderUseCase produce las representaciones PDF y XML de una factura.
// Ambas son lecturas puras: nunca tocan el estado de la factura.
type RenderUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	pdfGen      InvoicePDFGenerator
	xmlExporter InvoiceXMLExporter
}

// NewRenderUseCase construye el caso de uso de renderizado.
func NewRenderUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	pdfGen InvoicePDFGenerator,
	xmlExporter InvoiceXMLExporter,
) *RenderUseCase {
	return &RenderUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		pdfGen:      pdfGen,
		xmlExporter: xmlExporter,
	}
}

// PDF genera el documento PDF de la factura.
func (uc *RenderUseCase) PDF(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	inv, company, items, taxes, err := uc.load(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInvoicePDF(ctx, inv, company, items, taxes)
}

// XML genera la representación XML de la factura.
func (uc *RenderUseCase) XML(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	inv, company, items, taxes, err := uc.load(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.xmlExporter.ExportInvoiceXML(inv, company, items, taxes)
}

func (uc *RenderUseCase) load(companyID, invoiceID string) (*entity.Invoice, *entity.Company, []*entity.InvoiceItem, []*entity.TaxItem, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if inv == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, nil, nil, nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	taxes, err := uc.invoiceRepo.GetTaxesByInvoiceID(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return inv, company, items, taxes, nil
}
