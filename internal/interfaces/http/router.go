package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plazave/plaza-api/internal/application/auth"
	"github.com/plazave/plaza-api/internal/application/billing"
	appchatbot "github.com/plazave/plaza-api/internal/application/chatbot"
	"github.com/plazave/plaza-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CompanyUC  *usecase.CompanyUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	OrderUC    *usecase.OrderUseCase
	InvoiceUC  *billing.InvoiceUseCase
	RenderUC   *billing.RenderUseCase
	ChatbotUC  *appchatbot.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Marketplace público: empresas, categorías y productos se navegan sin token.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Get("/companies", companyHandler.List)
	api.Get("/companies/:id", companyHandler.GetByID)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.GetByID)

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	// Conversaciones con chatbots (público: sesiones anónimas permitidas)
	chatbotHandler := NewChatbotHandler(deps.ChatbotUC)
	api.Post("/chatbots/:id/conversations", chatbotHandler.StartConversation)
	api.Post("/conversations/:id/messages", chatbotHandler.AppendMessage)
	api.Get("/conversations/:id", chatbotHandler.History)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/companies", companyHandler.Create)
	protected.Put("/companies/:id", companyHandler.Update)
	protected.Delete("/companies/:id", companyHandler.Delete)

	protected.Post("/categories", categoryHandler.Create)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", categoryHandler.Delete)

	// Pedidos del comprador autenticado
	orderHandler := NewOrderHandler(deps.OrderUC)
	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.ListMine)
	protected.Get("/orders/received", RequireCompany(), orderHandler.ListReceived)
	protected.Get("/orders/:id", orderHandler.GetByID)

	// Catálogo propio de la empresa
	company := protected.Group("/", RequireCompany())
	company.Post("/products", productHandler.Create)
	company.Put("/products/:id", productHandler.Update)
	company.Delete("/products/:id", productHandler.Delete)

	// Facturación (siempre con empresa)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.RenderUC)
	company.Get("/invoices/dashboard", invoiceHandler.Dashboard)
	company.Get("/invoices/summary", invoiceHandler.Summary)
	company.Post("/invoices", invoiceHandler.Create)
	company.Get("/invoices", invoiceHandler.List)
	company.Get("/invoices/:id", invoiceHandler.GetByID)
	company.Put("/invoices/:id", invoiceHandler.Update)
	company.Delete("/invoices/:id", invoiceHandler.Delete)
	company.Post("/invoices/:id/status", invoiceHandler.ChangeStatus)
	company.Post("/invoices/:id/items", invoiceHandler.AddItem)
	company.Put("/invoices/:id/items/:itemId", invoiceHandler.UpdateItem)
	company.Delete("/invoices/:id/items/:itemId", invoiceHandler.RemoveItem)
	company.Post("/invoices/:id/taxes", invoiceHandler.AddTax)
	company.Put("/invoices/:id/taxes/:taxId", invoiceHandler.UpdateTax)
	company.Delete("/invoices/:id/taxes/:taxId", invoiceHandler.RemoveTax)
	company.Get("/invoices/:id/pdf", invoiceHandler.PDF)
	company.Get("/invoices/:id/xml", invoiceHandler.XML)

	// Chatbots de la empresa
	company.Post("/chatbots", chatbotHandler.Create)
	company.Get("/chatbots", chatbotHandler.List)
	company.Get("/chatbots/:id", chatbotHandler.GetByID)
	company.Put("/chatbots/:id", chatbotHandler.Update)
	company.Delete("/chatbots/:id", chatbotHandler.Delete)
}
