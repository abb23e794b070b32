package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura entrante. Total nunca viene del cliente.
type InvoiceItemRequest struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// TaxItemRequest impuesto entrante. Amount nunca viene del cliente.
type TaxItemRequest struct {
	TaxType    string          `json:"tax_type"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateInvoiceRequest alta de factura en BORRADOR.
type CreateInvoiceRequest struct {
	CustomerName                 string               `json:"customer_name"`
	CustomerEmail                string               `json:"customer_email"`
	CustomerIdentificationType   string               `json:"customer_identification_type"`
	CustomerIdentificationNumber string               `json:"customer_identification_number"`
	DueDate                      *time.Time           `json:"due_date"`
	Notes                        string               `json:"notes"`
	Items                        []InvoiceItemRequest `json:"items"`
	Taxes                        []TaxItemRequest     `json:"taxes"`
}

// UpdateInvoiceRequest actualización de factura (solo BORRADOR). Si Items o
// Taxes vienen no-nil se reemplaza el conjunto completo de hijos.
type UpdateInvoiceRequest struct {
	CustomerName                 string                `json:"customer_name"`
	CustomerEmail                string                `json:"customer_email"`
	CustomerIdentificationType   string                `json:"customer_identification_type"`
	CustomerIdentificationNumber string                `json:"customer_identification_number"`
	DueDate                      *time.Time            `json:"due_date"`
	Notes                        string                `json:"notes"`
	Items                        *[]InvoiceItemRequest `json:"items"`
	Taxes                        *[]TaxItemRequest     `json:"taxes"`
}

// ChangeStatusRequest transición de estado solicitada.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ListInvoicesRequest filtros del listado.
type ListInvoicesRequest struct {
	Status   string `query:"status"`
	DateFrom string `query:"date_from"` // YYYY-MM-DD
	DateTo   string `query:"date_to"`
	PageRequest
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// TaxItemResponse impuesto de la factura.
type TaxItemResponse struct {
	ID         string          `json:"id"`
	TaxType    string          `json:"tax_type"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID                           string                `json:"id"`
	CompanyID                    string                `json:"company_id"`
	InternalID                   string                `json:"internal_id"`
	InvoiceNumber                string                `json:"invoice_number"`
	CustomerName                 string                `json:"customer_name"`
	CustomerEmail                string                `json:"customer_email"`
	CustomerIdentificationType   string                `json:"customer_identification_type"`
	CustomerIdentificationNumber string                `json:"customer_identification_number"`
	IssueDate                    string                `json:"issue_date"`
	DueDate                      string                `json:"due_date,omitempty"`
	Status                       string                `json:"status"`
	Subtotal                     decimal.Decimal       `json:"subtotal"`
	Total                        decimal.Decimal       `json:"total"`
	Notes                        string                `json:"notes,omitempty"`
	Items                        []InvoiceItemResponse `json:"items"`
	Taxes                        []TaxItemResponse     `json:"taxes"`
}

// StatusCountResponse conteo por estado.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopCustomerResponse cliente destacado.
type TopCustomerResponse struct {
	CustomerName string          `json:"customer_name"`
	InvoiceCount int64           `json:"total_invoices"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// RecentActivityResponse factura de la actividad reciente del dashboard.
type RecentActivityResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DashboardResponse agregados de facturación de la empresa.
type DashboardResponse struct {
	TotalInvoices  int64                    `json:"total_invoices"`
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	PendingAmount  decimal.Decimal          `json:"pending_amount"`
	PaidAmount     decimal.Decimal          `json:"paid_amount"`
	StatusSummary  []StatusCountResponse    `json:"status_summary"`
	UpcomingDue    int64                    `json:"upcoming_due"`
	Overdue        int64                    `json:"overdue"`
	TopCustomers   []TopCustomerResponse    `json:"top_customers"`
	RecentActivity []RecentActivityResponse `json:"recent_activity"`
}

// SummaryRequest período del resumen de facturación.
type SummaryRequest struct {
	Period string `query:"period"` // month | quarter | year
}

// StatusTotalResponse conteo y monto por estado dentro de la ventana.
type StatusTotalResponse struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// TrendPointResponse punto de la tendencia de facturación.
type TrendPointResponse struct {
	Period      time.Time       `json:"period"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SummaryResponse resumen de facturación por período.
type SummaryResponse struct {
	Period  string                `json:"period"`
	Summary []StatusTotalResponse `json:"summary"`
	Trends  []TrendPointResponse  `json:"trends"`
}
