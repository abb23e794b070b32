package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plazave/plaza-api/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas (siempre dentro de una empresa).
type InvoiceFilter struct {
	Status   string
	DateFrom *time.Time // sobre issue_date, inclusive
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// StatusCount conteo de facturas por estado.
type StatusCount struct {
	Status string
	Count  int64
}

// TopCustomer cliente con mayor facturación de la empresa.
type TopCustomer struct {
	CustomerName string
	InvoiceCount int64
	TotalAmount  decimal.Decimal
}

// CompanyStatistics agregados de facturación por empresa.
type CompanyStatistics struct {
	TotalInvoices int64
	TotalAmount   decimal.Decimal
	PendingAmount decimal.Decimal // EMITIDA
	PaidAmount    decimal.Decimal // PAGADA
	StatusSummary []StatusCount
	UpcomingDue   int64 // EMITIDA con vencimiento en los próximos 7 días
	Overdue       int64 // EMITIDA con vencimiento pasado
	TopCustomers  []TopCustomer
}

// StatusTotal conteo y monto facturado por estado dentro de una ventana.
type StatusTotal struct {
	Status      string
	Count       int64
	TotalAmount decimal.Decimal
}

// TrendPoint punto de la serie temporal de facturación (cubeta date_trunc).
type TrendPoint struct {
	Period      time.Time
	Count       int64
	TotalAmount decimal.Decimal
}

// BillingSummary resumen de facturación de una ventana: desglose por estado
// y tendencia por cubeta temporal.
type BillingSummary struct {
	ByStatus []StatusTotal
	Trends   []TrendPoint
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus hijos.
// Las operaciones de mutación se invocan siempre dentro de una transacción
// (ver billing.TxRunner); GetByIDForUpdate bloquea la cabecera con FOR UPDATE
// para serializar recálculos concurrentes sobre la misma factura.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	CreateTax(tax *entity.TaxItem) error

	GetByID(id string) (*entity.Invoice, error)
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	GetTaxesByInvoiceID(invoiceID string) ([]*entity.TaxItem, error)
	ListByCompany(companyID string, filter InvoiceFilter) ([]*entity.Invoice, error)

	// Update persiste cabecera completa: snapshot de cliente, fechas, notas,
	// estado y totales derivados.
	Update(inv *entity.Invoice) error
	UpdateItem(item *entity.InvoiceItem) error
	// UpdateTaxAmounts persiste los Amount recalculados de todos los impuestos.
	UpdateTaxAmounts(taxes []*entity.TaxItem) error

	DeleteItem(itemID string) error
	DeleteTax(taxID string) error
	DeleteItemsByInvoiceID(invoiceID string) error
	DeleteTaxesByInvoiceID(invoiceID string) error
	// Delete borra la factura y sus hijos (solo borradores; lo garantiza el caso de uso).
	Delete(invoiceID string) error

	GetCompanyStatistics(companyID string, now time.Time) (*CompanyStatistics, error)
	// ListRecent devuelve las últimas facturas modificadas de la empresa,
	// más reciente primero. Alimenta la actividad reciente del dashboard.
	ListRecent(companyID string, limit int) ([]*entity.Invoice, error)
	// GetBillingSummary agrega las facturas creadas desde since: conteo y
	// monto por estado, y la tendencia por cubeta (bucket es un argumento de
	// date_trunc: day, week o month; lo valida el caso de uso).
	GetBillingSummary(companyID string, since time.Time, bucket string) (*BillingSummary, error)
}

// SequenceRepository avanza el contador de numeración por empresa. El avance
// es atómico (upsert con RETURNING) y se ejecuta en la misma transacción que
// la creación de la factura, eliminando la carrera leer-luego-incrementar.
type SequenceRepository interface {
	Next(companyID string) (int64, error)
}

// OutboxRepository define el puerto del outbox transaccional de notificaciones.
type OutboxRepository interface {
	Create(msg *entity.OutboxMessage) error
	ListPending(limit int) ([]*entity.OutboxMessage, error)
	MarkSent(id string, sentAt time.Time) error
	// MarkFailed incrementa el contador de intentos y registra el último error.
	// Con final=true el mensaje pasa a ERROR y deja de reintentarse.
	MarkFailed(id string, lastError string, final bool) error
}
