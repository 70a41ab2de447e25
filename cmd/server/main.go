package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/michaello/backoffice/internal/api"
	v1 "github.com/michaello/backoffice/internal/api/v1"
	"github.com/michaello/backoffice/internal/cache"
	"github.com/michaello/backoffice/internal/config"
	"github.com/michaello/backoffice/internal/email"
	"github.com/michaello/backoffice/internal/integration/stripe"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/pdfgen"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/repository"
	"github.com/michaello/backoffice/internal/service"
	"go.uber.org/fx"
)

// @title Backoffice API
// @version 1.0
// @description Jewelry back office: invoices, catalog, payments and certificates
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			providePostgresClient,

			// Integrations
			stripe.NewClient,
			email.NewEmailClient,
			email.NewService,
			pdfgen.NewTypstRenderer,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewItemRepository,
			repository.NewCategoryRepository,
			repository.NewCustomerRepository,
			repository.NewSupplierRepository,
			repository.NewCertificateRepository,

			// Services
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewPaymentService,
			service.NewItemService,
			service.NewCustomerService,
			service.NewSupplierService,
			service.NewCertificateService,

			// API
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func providePostgresClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	itemService service.ItemService,
	customerService service.CustomerService,
	supplierService service.SupplierService,
	certificateService service.CertificateService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Invoice:     v1.NewInvoiceHandler(invoiceService, logger),
		Item:        v1.NewItemHandler(itemService, logger),
		Category:    v1.NewCategoryHandler(itemService, logger),
		Customer:    v1.NewCustomerHandler(customerService, logger),
		Supplier:    v1.NewSupplierHandler(supplierService, logger),
		Certificate: v1.NewCertificateHandler(certificateService, logger),
		Webhook:     v1.NewWebhookHandler(paymentService, logger),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			db.Close()
			return server.Shutdown(ctx)
		},
	})
}
