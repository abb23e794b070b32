package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura.
const (
	StatusBorrador = "BORRADOR" // Editable; única fase en la que se permiten cambios
	StatusEmitida  = "EMITIDA"  // Enviada al cliente; dispara notificación por correo
	StatusPagada   = "PAGADA"   // Terminal
	StatusAnulada  = "ANULADA"  // Terminal; las facturas emitidas nunca se borran, se anulan
)

// Tipos de identificación del cliente (Colombia).
const (
	IdentificationCC  = "CC"  // Cédula de Ciudadanía
	IdentificationNIT = "NIT" // Número de Identificación Tributaria
	IdentificationRUT = "RUT" // Registro Único Tributario
)

// Tipos de impuesto aplicables sobre el subtotal.
const (
	TaxIVA   = "IVA"   // Impuesto al Valor Agregado
	TaxICA   = "ICA"   // Impuesto de Industria y Comercio
	TaxRenta = "RENTA" // Retención en la Fuente
)

// Invoice representa la cabecera de una factura. Subtotal y Total son campos
// derivados: los mantiene el caso de uso vía billing.CalculateTotals y nunca
// los fija el cliente HTTP.
type Invoice struct {
	ID            string
	CompanyID     string
	InternalID    string // ID interno secuencial por empresa: INV-<empresa>-000001
	InvoiceNumber string // número visible al cliente, único global: FV-<empresa>-<año>-0001

	CustomerName                 string
	CustomerEmail                string
	CustomerIdentificationType   string // CC | NIT | RUT
	CustomerIdentificationNumber string

	IssueDate time.Time
	DueDate   *time.Time // nil = sin vencimiento
	Status    string
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceItem representa una línea de producto de la factura.
// Total = Quantity × UnitPrice; derivado, no lo fija el cliente.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// TaxItem representa un impuesto porcentual sobre el subtotal de la factura.
// Amount se recalcula en cada pasada de CalculateTotals contra el subtotal
// vigente; nunca queda referido a un subtotal anterior.
type TaxItem struct {
	ID         string
	InvoiceID  string
	TaxType    string // IVA | ICA | RENTA
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}
