package entity

import "time"

// Company representa una empresa/tenant del marketplace. Cada empresa publica
// productos, recibe pedidos y emite sus propias facturas con numeración propia.
type Company struct {
	ID          string
	OwnerUserID string // usuario dueño de la empresa
	Name        string
	Description string
	Phone       string
	Address     string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
