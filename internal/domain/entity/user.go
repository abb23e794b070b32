package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario de la plataforma.
type User struct {
	ID           string
	CompanyID    string // vacío para compradores sin empresa
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
