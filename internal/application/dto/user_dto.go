package dto

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representación pública del usuario.
type UserResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
