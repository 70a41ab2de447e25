package service

import (
	"github.com/michaello/backoffice/internal/config"
	"github.com/michaello/backoffice/internal/domain/certificate"
	"github.com/michaello/backoffice/internal/domain/customer"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/domain/item"
	"github.com/michaello/backoffice/internal/domain/supplier"
	"github.com/michaello/backoffice/internal/email"
	"github.com/michaello/backoffice/internal/integration/stripe"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/pdfgen"
	"github.com/michaello/backoffice/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger      *logger.Logger
	Config      *config.Configuration
	DB          postgres.IClient
	PDFRenderer pdfgen.CertificateRenderer

	// Integrations
	PaymentGateway stripe.Gateway
	EmailSender    email.Sender

	// Repositories
	InvoiceRepo     invoice.Repository
	ItemRepo        item.Repository
	CategoryRepo    item.CategoryRepository
	CustomerRepo    customer.Repository
	SupplierRepo    supplier.Repository
	CertificateRepo certificate.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	pdfRenderer pdfgen.CertificateRenderer,
	paymentGateway stripe.Gateway,
	emailSender email.Sender,
	invoiceRepo invoice.Repository,
	itemRepo item.Repository,
	categoryRepo item.CategoryRepository,
	customerRepo customer.Repository,
	supplierRepo supplier.Repository,
	certificateRepo certificate.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		PDFRenderer:     pdfRenderer,
		PaymentGateway:  paymentGateway,
		EmailSender:     emailSender,
		InvoiceRepo:     invoiceRepo,
		ItemRepo:        itemRepo,
		CategoryRepo:    categoryRepo,
		CustomerRepo:    customerRepo,
		SupplierRepo:    supplierRepo,
		CertificateRepo: certificateRepo,
	}
}
