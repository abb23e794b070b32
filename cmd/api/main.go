package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/plazave/plaza-api/internal/application/auth"
	"github.com/plazave/plaza-api/internal/application/billing"
	appchatbot "github.com/plazave/plaza-api/internal/application/chatbot"
	"github.com/plazave/plaza-api/internal/application/notifier"
	"github.com/plazave/plaza-api/internal/application/usecase"
	inframail "github.com/plazave/plaza-api/internal/infrastructure/mail"
	infrapdf "github.com/plazave/plaza-api/internal/infrastructure/pdf"
	"github.com/plazave/plaza-api/internal/infrastructure/postgres"
	"github.com/plazave/plaza-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/plazave/plaza-api/internal/interfaces/http"
	"github.com/plazave/plaza-api/pkg/config"
	"github.com/plazave/plaza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas y operaciones sin tx)
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	chatbotRepo := postgres.NewChatbotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, companyRepo, productRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, companyRepo, productRepo, billing.NotifyConfig{
		AdminEmail: cfg.SMTP.AdminEmail,
	})
	renderUC := billing.NewRenderUseCase(
		invoiceRepo, companyRepo,
		infrapdf.NewMarotoInvoiceGenerator(),
		xmlexport.NewExporter(),
	)
	chatbotUC := appchatbot.NewUseCase(chatbotRepo)

	// Despachador del outbox de notificaciones (correo de factura emitida)
	mailer := inframail.NewGomailSender(cfg.SMTP)
	dispatcher := notifier.NewDispatcher(outboxRepo, mailer, log)
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	go dispatcher.Run(dispatcherCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Plaza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		OrderUC:    orderUC,
		InvoiceUC:  invoiceUC,
		RenderUC:   renderUC,
		ChatbotUC:  chatbotUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopDispatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
