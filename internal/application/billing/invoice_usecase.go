package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	domainbilling "github.com/plazave/plaza-api/internal/domain/billing"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

// NotifyConfig destinatarios administrativos de las notificaciones de emisión.
type NotifyConfig struct {
	AdminEmail string
}

// InvoiceUseCase orquesta el ciclo de vida de la factura: creación con
// numeración transaccional, mutación de hijos con recálculo explícito de
// totales, transiciones de estado y borrado de borradores.
//
// El recálculo nunca es un efecto colateral escondido en el save de un hijo:
// cada operación que toca una línea o un impuesto invoca el recálculo de forma
// explícita dentro de la misma transacción, con la cabecera bloqueada.
type InvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository // atado al pool; solo lecturas
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	notifyCfg   NotifyConfig
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	notifyCfg NotifyConfig,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		productRepo: productRepo,
		notifyCfg:   notifyCfg,
	}
}

// ── Creación ──────────────────────────────────────────────────────────────────

// Create crea una factura en BORRADOR. En una sola transacción: avanza el
// contador de la empresa, deriva ID interno y número de factura, inserta
// cabecera e hijos y persiste los totales calculados. Los campos derivados se
// calculan aquí, en un paso explícito de mapeo request→entidad; el payload
// entrante jamás se muta.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validateCustomer(in.CustomerName, in.CustomerEmail, in.CustomerIdentificationType, in.CustomerIdentificationNumber); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura debe contener al menos un item", domain.ErrInvalidInput)
	}

	items, err := uc.buildItems(companyID, in.Items)
	if err != nil {
		return nil, err
	}
	taxes, err := buildTaxes(in.Taxes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:                           uuid.New().String(),
		CompanyID:                    companyID,
		CustomerName:                 in.CustomerName,
		CustomerEmail:                in.CustomerEmail,
		CustomerIdentificationType:   in.CustomerIdentificationType,
		CustomerIdentificationNumber: in.CustomerIdentificationNumber,
		IssueDate:                    now,
		DueDate:                      in.DueDate,
		Status:                       entity.StatusBorrador,
		Notes:                        in.Notes,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}
	for _, item := range items {
		item.InvoiceID = inv.ID
	}
	for _, tax := range taxes {
		tax.InvoiceID = inv.ID
	}
	domainbilling.CalculateTotals(inv, items, taxes)

	err = uc.txRunner.RunInvoice(ctx, func(
		invRepo repository.InvoiceRepository,
		seqRepo repository.SequenceRepository,
		_ repository.OutboxRepository,
	) error {
		seq, err := seqRepo.Next(companyID)
		if err != nil {
			return err
		}
		inv.InternalID = domainbilling.FormatInternalID(companyID, seq)
		inv.InvoiceNumber = domainbilling.FormatInvoiceNumber(companyID, now.Year(), seq)

		if err := invRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invRepo.CreateItem(item); err != nil {
				return err
			}
		}
		for _, tax := range taxes {
			if err := invRepo.CreateTax(tax); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items, taxes), nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

// Get obtiene la factura completa. Facturas de otra empresa → acceso denegado.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	taxes, err := uc.invoiceRepo.GetTaxesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items, taxes), nil
}

// List lista facturas de la empresa con filtros de estado y rango de fechas.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, in dto.ListInvoicesRequest) ([]*dto.InvoiceResponse, error) {
	in.DefaultPage()
	filter := repository.InvoiceFilter{
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.Status != "" && !domainbilling.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}
	if in.DateFrom != "" {
		t, err := time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: date_from debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		filter.DateFrom = &t
	}
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: date_to debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		filter.DateTo = &t
	}

	list, err := uc.invoiceRepo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		// Listado sin hijos: el detalle completo se obtiene con Get.
		out = append(out, toInvoiceResponse(inv, nil, nil))
	}
	return out, nil
}

// Dashboard devuelve los agregados de facturación de la empresa.
func (uc *InvoiceUseCase) Dashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	stats, err := uc.invoiceRepo.GetCompanyStatistics(companyID, time.Now())
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardResponse{
		TotalInvoices: stats.TotalInvoices,
		TotalAmount:   stats.TotalAmount,
		PendingAmount: stats.PendingAmount,
		PaidAmount:    stats.PaidAmount,
		UpcomingDue:   stats.UpcomingDue,
		Overdue:       stats.Overdue,
	}
	for _, sc := range stats.StatusSummary {
		out.StatusSummary = append(out.StatusSummary, dto.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	for _, tc := range stats.TopCustomers {
		out.TopCustomers = append(out.TopCustomers, dto.TopCustomerResponse{
			CustomerName: tc.CustomerName,
			InvoiceCount: tc.InvoiceCount,
			TotalAmount:  tc.TotalAmount,
		})
	}

	recent, err := uc.invoiceRepo.ListRecent(companyID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	for _, inv := range recent {
		out.RecentActivity = append(out.RecentActivity, dto.RecentActivityResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			Total:         inv.Total,
			Status:        inv.Status,
			UpdatedAt:     inv.UpdatedAt,
		})
	}
	return out, nil
}

// recentActivityLimit facturas mostradas en la actividad reciente del dashboard.
const recentActivityLimit = 10

// Ventanas y cubetas del resumen por período.
var summaryPeriods = map[string]struct {
	days   int
	bucket string
}{
	"month":   {days: 30, bucket: "day"},
	"quarter": {days: 90, bucket: "week"},
	"year":    {days: 365, bucket: "month"},
}

// Summary devuelve el resumen de facturación de la ventana pedida: desglose
// por estado y tendencia por cubeta temporal (mes → días, trimestre →
// semanas, año → meses). Sin período se asume month.
func (uc *InvoiceUseCase) Summary(ctx context.Context, companyID, period string) (*dto.SummaryResponse, error) {
	if period == "" {
		period = "month"
	}
	win, ok := summaryPeriods[period]
	if !ok {
		return nil, fmt.Errorf("%w: period debe ser month, quarter o year", domain.ErrInvalidInput)
	}
	since := time.Now().AddDate(0, 0, -win.days)

	summary, err := uc.invoiceRepo.GetBillingSummary(companyID, since, win.bucket)
	if err != nil {
		return nil, err
	}
	out := &dto.SummaryResponse{Period: period}
	for _, st := range summary.ByStatus {
		out.Summary = append(out.Summary, dto.StatusTotalResponse{
			Status:      st.Status,
			Count:       st.Count,
			TotalAmount: st.TotalAmount,
		})
	}
	for _, tp := range summary.Trends {
		out.Trends = append(out.Trends, dto.TrendPointResponse{
			Period:      tp.Period,
			Count:       tp.Count,
			TotalAmount: tp.TotalAmount,
		})
	}
	return out, nil
}

// ── Actualización y borrado ───────────────────────────────────────────────────

// Update actualiza una factura en BORRADOR. Si Items/Taxes vienen no-nil se
// reemplaza el conjunto completo de hijos y se recalculan los totales; fuera
// de BORRADOR la operación se rechaza con conflicto.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validateCustomer(in.CustomerName, in.CustomerEmail, in.CustomerIdentificationType, in.CustomerIdentificationNumber); err != nil {
		return nil, err
	}

	var newItems []*entity.InvoiceItem
	if in.Items != nil {
		if len(*in.Items) == 0 {
			return nil, fmt.Errorf("%w: la factura debe contener al menos un item", domain.ErrInvalidInput)
		}
		var err error
		newItems, err = uc.buildItems(companyID, *in.Items)
		if err != nil {
			return nil, err
		}
	}
	var newTaxes []*entity.TaxItem
	if in.Taxes != nil {
		var err error
		newTaxes, err = buildTaxes(*in.Taxes)
		if err != nil {
			return nil, err
		}
	}

	var result *dto.InvoiceResponse
	err := uc.txRunner.RunInvoice(ctx, func(
		invRepo repository.InvoiceRepository,
		_ repository.SequenceRepository,
		_ repository.OutboxRepository,
	) error {
		inv, err := lockDraft(invRepo, companyID, id)
		if err != nil {
			return err
		}

		inv.CustomerName = in.CustomerName
		inv.CustomerEmail = in.CustomerEmail
		inv.CustomerIdentificationType = in.CustomerIdentificationType
		inv.CustomerIdentificationNumber = in.CustomerIdentificationNumber
		inv.DueDate = in.DueDate
		inv.Notes = in.Notes

		if newItems != nil {
			if err := invRepo.DeleteItemsByInvoiceID(inv.ID); err != nil {
				return err
			}
			for _, item := range newItems {
				item.InvoiceID = inv.ID
				if err := invRepo.CreateItem(item); err != nil {
					return err
				}
			}
		}
		if newTaxes != nil {
			if err := invRepo.DeleteTaxesByInvoiceID(inv.ID); err != nil {
				return err
			}
			for _, tax := range newTaxes {
				tax.InvoiceID = inv.ID
				if err := invRepo.CreateTax(tax); err != nil {
					return err
				}
			}
		}

		items, taxes, err := uc.recalculate(invRepo, inv)
		if err != nil {
			return err
		}
		result = toInvoiceResponse(inv, items, taxes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete borra físicamente una factura en BORRADOR con sus hijos.
// Las facturas emitidas no se borran: se anulan vía ChangeStatus.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.txRunner.RunInvoice(ctx, func(
		invRepo repository.InvoiceRepository,
		_ repository.SequenceRepository,
		_ repository.OutboxRepository,
	) error {
		inv, err := lockDraft(invRepo, companyID, id)
		if err != nil {
			return err
		}
		return invRepo.Delete(inv.ID)
	})
}

// ── Transición de estado ──────────────────────────────────────────────────────

// ChangeStatus aplica una transición del ciclo de vida. Al pasar a EMITIDA se
// escribe el registro de notificación en el outbox dentro de la misma
// transacción; el envío real del correo ocurre después, en el despachador, y
// su fallo no afecta la transición ya confirmada.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, companyID, id, newStatus string) (*dto.InvoiceResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var result *dto.InvoiceResponse
	err = uc.txRunner.RunInvoice(ctx, func(
		invRepo repository.InvoiceRepository,
		_ repository.SequenceRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		inv, err := invRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := domainbilling.CanTransition(inv.Status, newStatus); err != nil {
			return err
		}

		inv.Status = newStatus
		inv.UpdatedAt = time.Now()
		if err := invRepo.Update(inv); err != nil {
			return err
		}

		if newStatus == entity.StatusEmitida {
			msg, err := buildIssuedNotification(inv, company, uc.notifyCfg.AdminEmail)
			if err != nil {
				return err
			}
			if err := outboxRepo.Create(msg); err != nil {
				return err
			}
		}

		result = toInvoiceResponse(inv, nil, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ── Hijos: líneas ─────────────────────────────────────────────────────────────

// AddItem agrega una línea a un borrador y recalcula totales.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, companyID, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	items, err := uc.buildItems(companyID, []dto.InvoiceItemRequest{in})
	if err != nil {
		return nil, err
	}
	item := items[0]

	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		item.InvoiceID = inv.ID
		return invRepo.CreateItem(item)
	})
}

// UpdateItem modifica una línea de un borrador y recalcula totales.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, companyID, invoiceID, itemID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	items, err := uc.buildItems(companyID, []dto.InvoiceItemRequest{in})
	if err != nil {
		return nil, err
	}
	updated := items[0]

	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		current, err := findItem(invRepo, inv.ID, itemID)
		if err != nil {
			return err
		}
		current.ProductID = updated.ProductID
		current.Description = updated.Description
		current.Quantity = updated.Quantity
		current.UnitPrice = updated.UnitPrice
		current.Total = updated.Quantity.Mul(updated.UnitPrice)
		return invRepo.UpdateItem(current)
	})
}

// RemoveItem elimina una línea de un borrador; el recálculo posterior hace que
// la línea eliminada deje de aportar al subtotal y que todos los impuestos se
// reajusten al subtotal restante.
func (uc *InvoiceUseCase) RemoveItem(ctx context.Context, companyID, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		if _, err := findItem(invRepo, inv.ID, itemID); err != nil {
			return err
		}
		return invRepo.DeleteItem(itemID)
	})
}

// ── Hijos: impuestos ──────────────────────────────────────────────────────────

// AddTax agrega un impuesto a un borrador y recalcula totales.
func (uc *InvoiceUseCase) AddTax(ctx context.Context, companyID, invoiceID string, in dto.TaxItemRequest) (*dto.InvoiceResponse, error) {
	taxes, err := buildTaxes([]dto.TaxItemRequest{in})
	if err != nil {
		return nil, err
	}
	tax := taxes[0]

	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		tax.InvoiceID = inv.ID
		return invRepo.CreateTax(tax)
	})
}

// UpdateTax modifica un impuesto de un borrador y recalcula totales.
func (uc *InvoiceUseCase) UpdateTax(ctx context.Context, companyID, invoiceID, taxID string, in dto.TaxItemRequest) (*dto.InvoiceResponse, error) {
	taxes, err := buildTaxes([]dto.TaxItemRequest{in})
	if err != nil {
		return nil, err
	}
	updated := taxes[0]

	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		current, err := findTax(invRepo, inv.ID, taxID)
		if err != nil {
			return err
		}
		current.TaxType = updated.TaxType
		current.Percentage = updated.Percentage
		// Amount lo fija el recálculo contra el subtotal vigente.
		return invRepo.UpdateTaxAmounts([]*entity.TaxItem{current})
	})
}

// RemoveTax elimina un impuesto de un borrador y recalcula totales.
func (uc *InvoiceUseCase) RemoveTax(ctx context.Context, companyID, invoiceID, taxID string) (*dto.InvoiceResponse, error) {
	return uc.mutateDraft(ctx, companyID, invoiceID, func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error {
		if _, err := findTax(invRepo, inv.ID, taxID); err != nil {
			return err
		}
		return invRepo.DeleteTax(taxID)
	})
}

// ── Internos ──────────────────────────────────────────────────────────────────

// mutateDraft ejecuta una mutación de hijos con la cabecera bloqueada
// (FOR UPDATE) y recalcula los totales en la misma transacción.
func (uc *InvoiceUseCase) mutateDraft(
	ctx context.Context,
	companyID, invoiceID string,
	mutate func(invRepo repository.InvoiceRepository, inv *entity.Invoice) error,
) (*dto.InvoiceResponse, error) {
	var result *dto.InvoiceResponse
	err := uc.txRunner.RunInvoice(ctx, func(
		invRepo repository.InvoiceRepository,
		_ repository.SequenceRepository,
		_ repository.OutboxRepository,
	) error {
		inv, err := lockDraft(invRepo, companyID, invoiceID)
		if err != nil {
			return err
		}
		if err := mutate(invRepo, inv); err != nil {
			return err
		}
		items, taxes, err := uc.recalculate(invRepo, inv)
		if err != nil {
			return err
		}
		result = toInvoiceResponse(inv, items, taxes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recalculate relee el conjunto vigente de hijos, recalcula línea por línea e
// impuesto por impuesto y persiste montos y cabecera. Idempotente.
func (uc *InvoiceUseCase) recalculate(invRepo repository.InvoiceRepository, inv *entity.Invoice) ([]*entity.InvoiceItem, []*entity.TaxItem, error) {
	items, err := invRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, nil, err
	}
	taxes, err := invRepo.GetTaxesByInvoiceID(inv.ID)
	if err != nil {
		return nil, nil, err
	}
	domainbilling.CalculateTotals(inv, items, taxes)
	if len(taxes) > 0 {
		if err := invRepo.UpdateTaxAmounts(taxes); err != nil {
			return nil, nil, err
		}
	}
	inv.UpdatedAt = time.Now()
	if err := invRepo.Update(inv); err != nil {
		return nil, nil, err
	}
	return items, taxes, nil
}

// lockDraft bloquea la cabecera y verifica empresa y estado BORRADOR.
func lockDraft(invRepo repository.InvoiceRepository, companyID, invoiceID string) (*entity.Invoice, error) {
	inv, err := invRepo.GetByIDForUpdate(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inv.Status != entity.StatusBorrador {
		return nil, fmt.Errorf("%w: solo las facturas en BORRADOR son editables", domain.ErrConflict)
	}
	return inv, nil
}

func findItem(invRepo repository.InvoiceRepository, invoiceID, itemID string) (*entity.InvoiceItem, error) {
	items, err := invRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func findTax(invRepo repository.InvoiceRepository, invoiceID, taxID string) (*entity.TaxItem, error) {
	taxes, err := invRepo.GetTaxesByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	for _, tax := range taxes {
		if tax.ID == taxID {
			return tax, nil
		}
	}
	return nil, domain.ErrNotFound
}

// buildItems valida y materializa las líneas entrantes. El producto debe
// existir y pertenecer a la empresa; con precio unitario en cero se toma el
// precio vigente del producto.
func (uc *InvoiceUseCase) buildItems(companyID string, in []dto.InvoiceItemRequest) ([]*entity.InvoiceItem, error) {
	items := make([]*entity.InvoiceItem, 0, len(in))
	for _, req := range in {
		if req.ProductID == "" {
			return nil, fmt.Errorf("%w: la línea requiere product_id", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		unitPrice := req.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		item := &entity.InvoiceItem{
			ID:          uuid.New().String(),
			ProductID:   req.ProductID,
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
		}
		if err := domainbilling.ValidateItem(item); err != nil {
			return nil, err
		}
		item.Total = item.Quantity.Mul(item.UnitPrice)
		items = append(items, item)
	}
	return items, nil
}

func buildTaxes(in []dto.TaxItemRequest) ([]*entity.TaxItem, error) {
	taxes := make([]*entity.TaxItem, 0, len(in))
	for _, req := range in {
		tax := &entity.TaxItem{
			ID:         uuid.New().String(),
			TaxType:    req.TaxType,
			Percentage: req.Percentage,
		}
		if err := domainbilling.ValidateTax(tax); err != nil {
			return nil, err
		}
		taxes = append(taxes, tax)
	}
	return taxes, nil
}

func validateCustomer(name, email, idType, idNumber string) error {
	if name == "" {
		return fmt.Errorf("%w: customer_name es obligatorio", domain.ErrInvalidInput)
	}
	if email == "" {
		return fmt.Errorf("%w: el correo electrónico del cliente es obligatorio", domain.ErrInvalidInput)
	}
	switch idType {
	case entity.IdentificationCC, entity.IdentificationNIT, entity.IdentificationRUT:
	default:
		return fmt.Errorf("%w: tipo de identificación desconocido %q", domain.ErrInvalidInput, idType)
	}
	if idNumber == "" {
		return fmt.Errorf("%w: el número de identificación es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

// buildIssuedNotification arma el registro de outbox de una factura emitida.
func buildIssuedNotification(inv *entity.Invoice, company *entity.Company, adminEmail string) (*entity.OutboxMessage, error) {
	payload := map[string]string{
		"invoice_number": inv.InvoiceNumber,
		"internal_id":    inv.InternalID,
		"company_name":   company.Name,
		"customer_name":  inv.CustomerName,
		"total":          inv.Total.StringFixed(2),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar notificación: %w", err)
	}
	return &entity.OutboxMessage{
		ID:        uuid.New().String(),
		CompanyID: inv.CompanyID,
		InvoiceID: inv.ID,
		Kind:      entity.OutboxKindInvoiceIssued,
		Recipient: inv.CustomerEmail,
		CC:        adminEmail,
		Subject:   fmt.Sprintf("Factura %s emitida por %s", inv.InvoiceNumber, company.Name),
		Body:      string(body),
		Status:    entity.OutboxPending,
		CreatedAt: time.Now(),
	}, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem, taxes []*entity.TaxItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                           inv.ID,
		CompanyID:                    inv.CompanyID,
		InternalID:                   inv.InternalID,
		InvoiceNumber:                inv.InvoiceNumber,
		CustomerName:                 inv.CustomerName,
		CustomerEmail:                inv.CustomerEmail,
		CustomerIdentificationType:   inv.CustomerIdentificationType,
		CustomerIdentificationNumber: inv.CustomerIdentificationNumber,
		IssueDate:                    inv.IssueDate.Format("2006-01-02"),
		Status:                       inv.Status,
		Subtotal:                     inv.Subtotal,
		Total:                        inv.Total,
		Notes:                        inv.Notes,
		Items:                        make([]dto.InvoiceItemResponse, 0, len(items)),
		Taxes:                        make([]dto.TaxItemResponse, 0, len(taxes)),
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	for _, tax := range taxes {
		resp.Taxes = append(resp.Taxes, dto.TaxItemResponse{
			ID:         tax.ID,
			TaxType:    tax.TaxType,
			Percentage: tax.Percentage,
			Amount:     tax.Amount,
		})
	}
	return resp
}
