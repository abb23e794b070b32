package entity

import "time"

// Estados de un mensaje del outbox de notificaciones.
const (
	OutboxPending = "PENDIENTE"
	OutboxSent    = "ENVIADO"
	OutboxError   = "ERROR"
)

// Tipos de notificación.
const (
	OutboxKindInvoiceIssued = "invoice_issued"
)

// OutboxMessage es el registro transaccional de una notificación pendiente.
// Se escribe en la misma transacción que el cambio de estado de la factura;
// un despachador en segundo plano lo envía por SMTP y registra el resultado.
// Así el fallo del correo nunca revierte ni oculta la transición ya confirmada.
type OutboxMessage struct {
	ID        string
	CompanyID string
	InvoiceID string
	Kind      string // ver constantes OutboxKind*
	Recipient string // destinatario principal (cliente)
	CC        string // copia administrativa, vacío si no aplica
	Subject   string
	Body      string
	Status    string // PENDIENTE | ENVIADO | ERROR
	Attempts  int
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}
