package dto

// CreateCompanyRequest alta de empresa.
type CreateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Email       string `json:"email"`
}

// UpdateCompanyRequest actualización de empresa.
type UpdateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Email       string `json:"email"`
}

// CompanyResponse representación pública de la empresa.
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Email       string `json:"email"`
}
