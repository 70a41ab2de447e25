package testutil

import (
	"context"
	"time"

	"github.com/michaello/backoffice/internal/config"
	"github.com/michaello/backoffice/internal/domain/certificate"
	"github.com/michaello/backoffice/internal/domain/customer"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/domain/item"
	"github.com/michaello/backoffice/internal/domain/supplier"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo     invoice.Repository
	ItemRepo        item.Repository
	CategoryRepo    item.CategoryRepository
	CustomerRepo    customer.Repository
	SupplierRepo    supplier.Repository
	CertificateRepo certificate.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time

	gateway  *MockPaymentGateway
	sender   *MockEmailSender
	renderer *MockCertificateRenderer
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Documents: config.DocumentsConfig{
			TemplateDir: "testdata",
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = types.SetUserID(s.ctx, "user_test")
	s.ctx = types.SetRequestID(s.ctx, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		InvoiceRepo:     NewInMemoryInvoiceStore(),
		ItemRepo:        NewInMemoryItemStore(),
		CategoryRepo:    NewInMemoryCategoryStore(),
		CustomerRepo:    NewInMemoryCustomerStore(),
		SupplierRepo:    NewInMemorySupplierStore(),
		CertificateRepo: NewInMemoryCertificateStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.gateway = NewMockPaymentGateway()
	s.sender = NewMockEmailSender()
	s.renderer = NewMockCertificateRenderer()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ItemRepo.(*InMemoryItemStore).Clear()
	s.stores.CategoryRepo.(*InMemoryCategoryStore).Clear()
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.SupplierRepo.(*InMemorySupplierStore).Clear()
	s.stores.CertificateRepo.(*InMemoryCertificateStore).Clear()
	s.gateway.Clear()
	s.sender.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetPaymentGateway returns the recording payment gateway
func (s *BaseServiceTestSuite) GetPaymentGateway() *MockPaymentGateway {
	return s.gateway
}

// GetEmailSender returns the recording email sender
func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.sender
}

// GetPDFRenderer returns the canned certificate renderer
func (s *BaseServiceTestSuite) GetPDFRenderer() *MockCertificateRenderer {
	return s.renderer
}
