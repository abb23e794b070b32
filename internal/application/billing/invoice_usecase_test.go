package billing_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazave/plaza-api/internal/application/billing"
	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

const (
	empresaID = "emp-1"
	otraID    = "emp-2"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Fakes en memoria ──────────────────────────────────────────────────────────

// memStore guarda el estado compartido por todos los repos fake. Hace las
// veces de base de datos: los repos devuelven copias y las mutaciones solo
// se ven tras Update/UpdateItem/UpdateTaxAmounts, igual que con Postgres.
type memStore struct {
	invoices map[string]*entity.Invoice
	items    []*entity.InvoiceItem
	taxes    []*entity.TaxItem
	seqs     map[string]int64
	outbox   []*entity.OutboxMessage

	// argumentos del último GetBillingSummary, para verificar la ventana
	lastSummarySince  time.Time
	lastSummaryBucket string
}

func newMemStore() *memStore {
	return &memStore{
		invoices: map[string]*entity.Invoice{},
		seqs:     map[string]int64{},
	}
}

type memInvoiceRepo struct{ s *memStore }

var _ repository.InvoiceRepository = (*memInvoiceRepo)(nil)

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *memInvoiceRepo) CreateTax(tax *entity.TaxItem) error {
	cp := *tax
	r.s.taxes = append(r.s.taxes, &cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, item := range r.s.items {
		if item.InvoiceID == invoiceID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) GetTaxesByInvoiceID(invoiceID string) ([]*entity.TaxItem, error) {
	var out []*entity.TaxItem
	for _, tax := range r.s.taxes {
		if tax.InvoiceID == invoiceID {
			cp := *tax
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByCompany(companyID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return fmt.Errorf("factura %s no existe", inv.ID)
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	for i, cur := range r.s.items {
		if cur.ID == item.ID {
			cp := *item
			r.s.items[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("item %s no existe", item.ID)
}

func (r *memInvoiceRepo) UpdateTaxAmounts(taxes []*entity.TaxItem) error {
	for _, tax := range taxes {
		for i, cur := range r.s.taxes {
			if cur.ID == tax.ID {
				cp := *tax
				r.s.taxes[i] = &cp
			}
		}
	}
	return nil
}

func (r *memInvoiceRepo) DeleteItem(itemID string) error {
	for i, cur := range r.s.items {
		if cur.ID == itemID {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memInvoiceRepo) DeleteTax(taxID string) error {
	for i, cur := range r.s.taxes {
		if cur.ID == taxID {
			r.s.taxes = append(r.s.taxes[:i], r.s.taxes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memInvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	kept := r.s.items[:0]
	for _, item := range r.s.items {
		if item.InvoiceID != invoiceID {
			kept = append(kept, item)
		}
	}
	r.s.items = kept
	return nil
}

func (r *memInvoiceRepo) DeleteTaxesByInvoiceID(invoiceID string) error {
	kept := r.s.taxes[:0]
	for _, tax := range r.s.taxes {
		if tax.InvoiceID != invoiceID {
			kept = append(kept, tax)
		}
	}
	r.s.taxes = kept
	return nil
}

func (r *memInvoiceRepo) Delete(invoiceID string) error {
	if err := r.DeleteItemsByInvoiceID(invoiceID); err != nil {
		return err
	}
	if err := r.DeleteTaxesByInvoiceID(invoiceID); err != nil {
		return err
	}
	delete(r.s.invoices, invoiceID)
	return nil
}

func (r *memInvoiceRepo) GetCompanyStatistics(companyID string, now time.Time) (*repository.CompanyStatistics, error) {
	stats := &repository.CompanyStatistics{
		TotalAmount:   decimal.Zero,
		PendingAmount: decimal.Zero,
		PaidAmount:    decimal.Zero,
	}
	for _, inv := range r.s.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		stats.TotalInvoices++
		stats.TotalAmount = stats.TotalAmount.Add(inv.Total)
	}
	return stats, nil
}

func (r *memInvoiceRepo) ListRecent(companyID string, limit int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memInvoiceRepo) GetBillingSummary(companyID string, since time.Time, bucket string) (*repository.BillingSummary, error) {
	r.s.lastSummarySince = since
	r.s.lastSummaryBucket = bucket

	totals := map[string]*repository.StatusTotal{}
	var count int64
	total := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.CompanyID != companyID || inv.CreatedAt.Before(since) {
			continue
		}
		st, ok := totals[inv.Status]
		if !ok {
			st = &repository.StatusTotal{Status: inv.Status, TotalAmount: decimal.Zero}
			totals[inv.Status] = st
		}
		st.Count++
		st.TotalAmount = st.TotalAmount.Add(inv.Total)
		count++
		total = total.Add(inv.Total)
	}

	summary := &repository.BillingSummary{}
	statuses := make([]string, 0, len(totals))
	for status := range totals {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		summary.ByStatus = append(summary.ByStatus, *totals[status])
	}
	if count > 0 {
		summary.Trends = []repository.TrendPoint{{Period: since, Count: count, TotalAmount: total}}
	}
	return summary, nil
}

type memSequenceRepo struct{ s *memStore }

func (r *memSequenceRepo) Next(companyID string) (int64, error) {
	r.s.seqs[companyID]++
	return r.s.seqs[companyID], nil
}

type memOutboxRepo struct{ s *memStore }

func (r *memOutboxRepo) Create(msg *entity.OutboxMessage) error {
	cp := *msg
	r.s.outbox = append(r.s.outbox, &cp)
	return nil
}

func (r *memOutboxRepo) ListPending(limit int) ([]*entity.OutboxMessage, error) {
	var out []*entity.OutboxMessage
	for _, msg := range r.s.outbox {
		if msg.Status == entity.OutboxPending && len(out) < limit {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *memOutboxRepo) MarkSent(id string, sentAt time.Time) error { return nil }

func (r *memOutboxRepo) MarkFailed(id string, lastError string, final bool) error { return nil }

// memTxRunner entrega los repos fake sin transacción real; las pruebas de
// atomicidad de verdad viven en la capa postgres.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) RunInvoice(ctx context.Context, fn func(
	invRepo repository.InvoiceRepository,
	seqRepo repository.SequenceRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	return fn(&memInvoiceRepo{s: tr.s}, &memSequenceRepo{s: tr.s}, &memOutboxRepo{s: tr.s})
}

type memCompanyRepo struct{ companies map[string]*entity.Company }

func (r *memCompanyRepo) Create(company *entity.Company) error { return nil }
func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *company
	return &cp, nil
}
func (r *memCompanyRepo) List(search, categoryID string, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}
func (r *memCompanyRepo) Update(company *entity.Company) error { return nil }
func (r *memCompanyRepo) Delete(id string) error               { return nil }

type memProductRepo struct{ products map[string]*entity.Product }

func (r *memProductRepo) Create(product *entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}
func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(product *entity.Product) error { return nil }
func (r *memProductRepo) Delete(id string) error               { return nil }

// ── Armado ────────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *billing.InvoiceUseCase
	store *memStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	companies := &memCompanyRepo{companies: map[string]*entity.Company{
		empresaID: {ID: empresaID, Name: "Ferretería El Tornillo", Email: "ventas@tornillo.co"},
		otraID:    {ID: otraID, Name: "Otra Empresa"},
	}}
	products := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: empresaID, Name: "Martillo", Price: dec("100.00")},
		"p2": {ID: "p2", CompanyID: empresaID, Name: "Destornillador", Price: dec("50.00")},
		"px": {ID: "px", CompanyID: otraID, Name: "Ajeno", Price: dec("10.00")},
	}}
	uc := billing.NewInvoiceUseCase(
		&memTxRunner{s: store},
		&memInvoiceRepo{s: store},
		companies,
		products,
		billing.NotifyConfig{AdminEmail: "admin@plaza.co"},
	)
	return &fixture{uc: uc, store: store}
}

func draftRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerName:                 "Juan Pérez",
		CustomerEmail:                "juan@example.com",
		CustomerIdentificationType:   entity.IdentificationCC,
		CustomerIdentificationNumber: "123456",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100.00")},
			{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("50.00")},
		},
		Taxes: []dto.TaxItemRequest{{TaxType: entity.TaxIVA, Percentage: dec("19")}},
	}
}

func (f *fixture) crearBorrador(t *testing.T) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), empresaID, draftRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreate_AsignaNumeracionSecuencial(t *testing.T) {
	f := newFixture(t)
	year := time.Now().Year()

	primera := f.crearBorrador(t)
	segunda := f.crearBorrador(t)

	assert.Equal(t, fmt.Sprintf("INV-%s-000001", empresaID), primera.InternalID)
	assert.Equal(t, fmt.Sprintf("FV-%s-%d-0001", empresaID, year), primera.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("INV-%s-000002", empresaID), segunda.InternalID)
	assert.Equal(t, entity.StatusBorrador, primera.Status)
}

func TestCreate_CalculaTotales(t *testing.T) {
	f := newFixture(t)

	resp := f.crearBorrador(t)

	// 2×100 + 1×50 = 250; IVA 19% = 47.50
	assert.True(t, resp.Subtotal.Equal(dec("250.00")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(dec("297.50")), "total = %s", resp.Total)
	require.Len(t, resp.Taxes, 1)
	assert.True(t, resp.Taxes[0].Amount.Equal(dec("47.50")))
}

func TestCreate_PrecioPorDefectoDelProducto(t *testing.T) {
	f := newFixture(t)
	in := draftRequest()
	in.Items = []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: dec("3")}} // sin precio
	in.Taxes = nil

	resp, err := f.uc.Create(context.Background(), empresaID, in)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("100.00")), "toma el precio vigente del producto")
	assert.True(t, resp.Total.Equal(dec("300.00")))
}

func TestCreate_ProductoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	in := draftRequest()
	in.Items = []dto.InvoiceItemRequest{{ProductID: "px", Quantity: dec("1")}}

	_, err := f.uc.Create(context.Background(), empresaID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_SinItems(t *testing.T) {
	f := newFixture(t)
	in := draftRequest()
	in.Items = nil

	_, err := f.uc.Create(context.Background(), empresaID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ClienteInvalido(t *testing.T) {
	f := newFixture(t)
	in := draftRequest()
	in.CustomerIdentificationType = "PASAPORTE"

	_, err := f.uc.Create(context.Background(), empresaID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func TestGet_OtraEmpresaDenegada(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)

	_, err := f.uc.Get(context.Background(), otraID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(context.Background(), empresaID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Transiciones de estado ────────────────────────────────────────────────────

func TestChangeStatus_EmitirEscribeOutbox(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)

	emitida, err := f.uc.ChangeStatus(context.Background(), empresaID, resp.ID, entity.StatusEmitida)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEmitida, emitida.Status)

	// La notificación quedó en el outbox junto con la transición.
	require.Len(t, f.store.outbox, 1)
	msg := f.store.outbox[0]
	assert.Equal(t, entity.OutboxKindInvoiceIssued, msg.Kind)
	assert.Equal(t, "juan@example.com", msg.Recipient)
	assert.Equal(t, "admin@plaza.co", msg.CC)
	assert.Equal(t, entity.OutboxPending, msg.Status)
	assert.Contains(t, msg.Subject, resp.InvoiceNumber)
	assert.Contains(t, msg.Subject, "Ferretería El Tornillo")
}

func TestChangeStatus_SoloEmitirNotifica(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	_, err := f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusEmitida)
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusPagada)
	require.NoError(t, err)

	// Pagar no agrega un segundo mensaje.
	assert.Len(t, f.store.outbox, 1)
}

func TestChangeStatus_TransicionesInvalidas(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	// Un borrador no puede pagarse directamente.
	_, err := f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusPagada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Una factura pagada no puede anularse.
	_, err = f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusEmitida)
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusPagada)
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusAnulada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.ChangeStatus(ctx, empresaID, resp.ID, "LIMBO")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ── Mutación de hijos ─────────────────────────────────────────────────────────

func TestMutarHijos_SoloEnBorrador(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	_, err := f.uc.ChangeStatus(ctx, empresaID, resp.ID, entity.StatusEmitida)
	require.NoError(t, err)

	_, err = f.uc.AddItem(ctx, empresaID, resp.ID, dto.InvoiceItemRequest{ProductID: "p1", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.RemoveItem(ctx, empresaID, resp.ID, resp.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = f.uc.Delete(ctx, empresaID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "las emitidas se anulan, no se borran")
}

func TestRemoveItem_ReajustaImpuestosAlSubtotal(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t) // subtotal 250, IVA 47.50
	ctx := context.Background()

	// Quitar la línea de 2×100 deja subtotal 50; el IVA debe seguirlo.
	actual, err := f.uc.RemoveItem(ctx, empresaID, resp.ID, resp.Items[0].ID)
	require.NoError(t, err)

	assert.True(t, actual.Subtotal.Equal(dec("50.00")), "subtotal = %s", actual.Subtotal)
	require.Len(t, actual.Taxes, 1)
	assert.True(t, actual.Taxes[0].Amount.Equal(dec("9.50")), "iva = %s", actual.Taxes[0].Amount)
	assert.True(t, actual.Total.Equal(dec("59.50")))

	// Y lo persistido coincide con lo respondido.
	guardada, err := f.uc.Get(ctx, empresaID, resp.ID)
	require.NoError(t, err)
	assert.True(t, guardada.Total.Equal(actual.Total))
	assert.True(t, guardada.Taxes[0].Amount.Equal(dec("9.50")))
}

func TestAddItem_Recalcula(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t) // subtotal 250
	ctx := context.Background()

	actual, err := f.uc.AddItem(ctx, empresaID, resp.ID, dto.InvoiceItemRequest{
		ProductID: "p2", Quantity: dec("2"), UnitPrice: dec("25.00"),
	})
	require.NoError(t, err)

	assert.True(t, actual.Subtotal.Equal(dec("300.00")))
	assert.True(t, actual.Taxes[0].Amount.Equal(dec("57.00")))
	assert.True(t, actual.Total.Equal(dec("357.00")))
}

func TestUpdateItem_Recalcula(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	actual, err := f.uc.UpdateItem(ctx, empresaID, resp.ID, resp.Items[0].ID, dto.InvoiceItemRequest{
		ProductID: "p1", Quantity: dec("10"), UnitPrice: dec("100.00"),
	})
	require.NoError(t, err)

	// 10×100 + 1×50 = 1050; IVA 19% = 199.50
	assert.True(t, actual.Subtotal.Equal(dec("1050.00")))
	assert.True(t, actual.Total.Equal(dec("1249.50")))
}

func TestRemoveTax_Recalcula(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	actual, err := f.uc.RemoveTax(ctx, empresaID, resp.ID, resp.Taxes[0].ID)
	require.NoError(t, err)

	assert.Empty(t, actual.Taxes)
	assert.True(t, actual.Total.Equal(actual.Subtotal), "sin impuestos el total es el subtotal")
}

func TestRemoveItem_ItemInexistente(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)

	_, err := f.uc.RemoveItem(context.Background(), empresaID, resp.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Dashboard y resumen ───────────────────────────────────────────────────────

func TestDashboard_IncluyeActividadReciente(t *testing.T) {
	f := newFixture(t)
	var ultima *dto.InvoiceResponse
	for i := 0; i < 12; i++ {
		ultima = f.crearBorrador(t)
	}
	// La modificada más recientemente encabeza la lista.
	f.store.invoices[ultima.ID].UpdatedAt = time.Now().Add(time.Hour)

	dash, err := f.uc.Dashboard(context.Background(), empresaID)
	require.NoError(t, err)

	require.Len(t, dash.RecentActivity, 10, "la actividad reciente se limita a 10 facturas")
	assert.Equal(t, ultima.ID, dash.RecentActivity[0].ID)
	assert.Equal(t, ultima.InvoiceNumber, dash.RecentActivity[0].InvoiceNumber)
	assert.Equal(t, entity.StatusBorrador, dash.RecentActivity[0].Status)
	assert.True(t, dash.RecentActivity[0].Total.Equal(dec("297.50")))
}

func TestSummary_VentanasPorPeriodo(t *testing.T) {
	f := newFixture(t)
	f.crearBorrador(t)
	ctx := context.Background()

	casos := []struct {
		period string
		bucket string
		days   int
	}{
		{"month", "day", 30},
		{"quarter", "week", 90},
		{"year", "month", 365},
	}
	for _, c := range casos {
		out, err := f.uc.Summary(ctx, empresaID, c.period)
		require.NoError(t, err)
		assert.Equal(t, c.period, out.Period)
		assert.Equal(t, c.bucket, f.store.lastSummaryBucket, "cubeta de %s", c.period)
		esperado := time.Now().AddDate(0, 0, -c.days)
		assert.WithinDuration(t, esperado, f.store.lastSummarySince, time.Minute, "ventana de %s", c.period)
	}

	// Sin período se asume month.
	out, err := f.uc.Summary(ctx, empresaID, "")
	require.NoError(t, err)
	assert.Equal(t, "month", out.Period)
	assert.Equal(t, "day", f.store.lastSummaryBucket)
}

func TestSummary_PeriodoInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Summary(context.Background(), empresaID, "decade")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary_AgregaPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emitida := f.crearBorrador(t) // 297.50 cada una
	f.crearBorrador(t)
	_, err := f.uc.ChangeStatus(ctx, empresaID, emitida.ID, entity.StatusEmitida)
	require.NoError(t, err)

	out, err := f.uc.Summary(ctx, empresaID, "month")
	require.NoError(t, err)

	require.Len(t, out.Summary, 2)
	assert.Equal(t, entity.StatusBorrador, out.Summary[0].Status)
	assert.Equal(t, int64(1), out.Summary[0].Count)
	assert.Equal(t, entity.StatusEmitida, out.Summary[1].Status)
	assert.True(t, out.Summary[1].TotalAmount.Equal(dec("297.50")))

	require.Len(t, out.Trends, 1)
	assert.Equal(t, int64(2), out.Trends[0].Count)
	assert.True(t, out.Trends[0].TotalAmount.Equal(dec("595.00")))
}

// ── Borrado ───────────────────────────────────────────────────────────────────

func TestDelete_BorradorDesaparece(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Delete(ctx, empresaID, resp.ID))

	_, err := f.uc.Get(ctx, empresaID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.items, "los hijos se borran con la cabecera")
	assert.Empty(t, f.store.taxes)
}

// ── Update (reemplazo completo) ───────────────────────────────────────────────

func TestUpdate_ReemplazaHijosYRecalcula(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBorrador(t)
	ctx := context.Background()

	items := []dto.InvoiceItemRequest{{ProductID: "p2", Quantity: dec("4"), UnitPrice: dec("50.00")}}
	taxes := []dto.TaxItemRequest{{TaxType: entity.TaxICA, Percentage: dec("1")}}
	actual, err := f.uc.Update(ctx, empresaID, resp.ID, dto.UpdateInvoiceRequest{
		CustomerName:                 "María Gómez",
		CustomerEmail:                "maria@example.com",
		CustomerIdentificationType:   entity.IdentificationNIT,
		CustomerIdentificationNumber: "900123456",
		Items:                        &items,
		Taxes:                        &taxes,
	})
	require.NoError(t, err)

	assert.Equal(t, "María Gómez", actual.CustomerName)
	require.Len(t, actual.Items, 1)
	require.Len(t, actual.Taxes, 1)
	assert.Equal(t, entity.TaxICA, actual.Taxes[0].TaxType)
	assert.True(t, actual.Subtotal.Equal(dec("200.00")))
	assert.True(t, actual.Taxes[0].Amount.Equal(dec("2.00")))
	assert.True(t, actual.Total.Equal(dec("202.00")))

	// La numeración original no cambia al editar.
	assert.Equal(t, resp.InternalID, actual.InternalID)
	assert.Equal(t, resp.InvoiceNumber, actual.InvoiceNumber)
}
