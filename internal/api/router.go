package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/michaello/backoffice/internal/api/v1"
	"github.com/michaello/backoffice/internal/rest/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Invoice     *v1.InvoiceHandler
	Item        *v1.ItemHandler
	Category    *v1.CategoryHandler
	Customer    *v1.CustomerHandler
	Supplier    *v1.SupplierHandler
	Certificate *v1.CertificateHandler
	Webhook     *v1.WebhookHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	invoice *v1.InvoiceHandler,
	item *v1.ItemHandler,
	category *v1.CategoryHandler,
	customer *v1.CustomerHandler,
	supplier *v1.SupplierHandler,
	certificate *v1.CertificateHandler,
	webhook *v1.WebhookHandler,
) Handlers {
	return Handlers{
		Health:      health,
		Invoice:     invoice,
		Item:        item,
		Category:    category,
		Customer:    customer,
		Supplier:    supplier,
		Certificate: certificate,
		Webhook:     webhook,
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.POST("/:id/send", handlers.Invoice.SendInvoice)
		invoices.POST("/:id/void", handlers.Invoice.VoidInvoice)
		invoices.POST("/:id/checkout", handlers.Invoice.CreateCheckoutSession)
	}

	// Catalog routes
	items := router.Group("/items")
	{
		items.POST("", handlers.Item.CreateItem)
		items.GET("", handlers.Item.ListItems)
		items.GET("/:id", handlers.Item.GetItem)
		items.PUT("/:id", handlers.Item.UpdateItem)
		items.DELETE("/:id", handlers.Item.DeleteItem)
	}

	categories := router.Group("/categories")
	{
		categories.POST("", handlers.Category.CreateCategory)
		categories.GET("", handlers.Category.ListCategories)
		categories.GET("/:id", handlers.Category.GetCategory)
		categories.PUT("/:id", handlers.Category.UpdateCategory)
		categories.DELETE("/:id", handlers.Category.DeleteCategory)
	}

	// CRM routes
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	suppliers := router.Group("/suppliers")
	{
		suppliers.POST("", handlers.Supplier.CreateSupplier)
		suppliers.GET("", handlers.Supplier.ListSuppliers)
		suppliers.GET("/:id", handlers.Supplier.GetSupplier)
		suppliers.PUT("/:id", handlers.Supplier.UpdateSupplier)
		suppliers.DELETE("/:id", handlers.Supplier.DeleteSupplier)
	}

	// Certificate routes
	certificates := router.Group("/certificates")
	{
		certificates.POST("", handlers.Certificate.CreateCertificate)
		certificates.GET("", handlers.Certificate.ListCertificates)
		certificates.GET("/:id", handlers.Certificate.GetCertificate)
		certificates.GET("/:id/pdf", handlers.Certificate.GetCertificatePDF)
		certificates.DELETE("/:id", handlers.Certificate.DeleteCertificate)
	}

	// Webhook routes
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/stripe", handlers.Webhook.HandleStripeWebhook)
	}
}
