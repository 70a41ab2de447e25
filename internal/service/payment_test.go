package service

import (
	"encoding/json"
	"testing"

	"github.com/michaello/backoffice/internal/domain/customer"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/domain/item"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/testutil"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewPaymentService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		PDFRenderer:     s.GetPDFRenderer(),
		PaymentGateway:  s.GetPaymentGateway(),
		EmailSender:     s.GetEmailSender(),
		InvoiceRepo:     stores.InvoiceRepo,
		ItemRepo:        stores.ItemRepo,
		CategoryRepo:    stores.CategoryRepo,
		CustomerRepo:    stores.CustomerRepo,
		SupplierRepo:    stores.SupplierRepo,
		CertificateRepo: stores.CertificateRepo,
	})
}

func (s *PaymentServiceSuite) seedSentInvoice(itemID *string, quantity int64) *invoice.Invoice {
	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixCustomer),
		Name:      "Jan Nowak",
		Email:     "jan@example.com",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoice),
		CustomerID:    lo.ToPtr(cust.ID),
		InvoiceStatus: types.InvoiceStatusSent,
		Currency:      "eur",
		Lines: []*invoice.InvoiceLine{
			{
				ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLine),
				ItemID:      itemID,
				Description: "Gold Ring",
				Quantity:    quantity,
				UnitPrice:   decimal.NewFromInt(100),
			},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	for _, l := range inv.Lines {
		l.InvoiceID = inv.ID
	}
	inv.RecomputeTotals()
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLines(s.GetContext(), inv))
	return inv
}

func (s *PaymentServiceSuite) seedStockedItem(stock int64) *item.Item {
	i := &item.Item{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixItem),
		SKU:       "SKU-" + types.GenerateUUID(),
		Name:      "Gold Ring",
		Metal:     types.MetalGold,
		Purity:    types.Purity18K,
		Price:     decimal.NewFromInt(100),
		Stock:     stock,
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), i))
	return i
}

func (s *PaymentServiceSuite) stubCheckoutCompleted(invoiceID string) {
	raw, err := json.Marshal(map[string]interface{}{
		"id":             "cs_test_event",
		"metadata":       map[string]string{types.MetadataKeyInvoiceID: invoiceID},
		"payment_intent": "pi_test_123",
	})
	s.NoError(err)

	s.GetPaymentGateway().Event = &stripesdk.Event{
		ID:   "evt_test_1",
		Type: stripesdk.EventType(types.WebhookEventTypeCheckoutSessionCompleted),
		Data: &stripesdk.EventData{Raw: raw},
	}
}

func (s *PaymentServiceSuite) TestSettlementMarksPaidAndDecrementsStock() {
	catalogItem := s.seedStockedItem(5)
	inv := s.seedSentInvoice(lo.ToPtr(catalogItem.ID), 2)
	s.stubCheckoutCompleted(inv.ID)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Received)
	s.True(resp.Handled)

	settled, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, settled.InvoiceStatus)
	s.NotNil(settled.PaymentIntentID)
	s.Equal("pi_test_123", *settled.PaymentIntentID)

	stocked, err := s.GetStores().ItemRepo.Get(s.GetContext(), catalogItem.ID)
	s.NoError(err)
	s.Equal(int64(3), stocked.Stock)

	s.Len(s.GetEmailSender().PaymentConfirmations, 1)
	s.Equal("jan@example.com", s.GetEmailSender().PaymentConfirmations[0].ToAddress)
}

func (s *PaymentServiceSuite) TestDuplicateWebhookSettlesOnce() {
	catalogItem := s.seedStockedItem(5)
	inv := s.seedSentInvoice(lo.ToPtr(catalogItem.ID), 2)
	s.stubCheckoutCompleted(inv.ID)

	first, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(first.Handled)

	second, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(second.Received)
	s.False(second.Handled)

	stocked, err := s.GetStores().ItemRepo.Get(s.GetContext(), catalogItem.ID)
	s.NoError(err)
	s.Equal(int64(3), stocked.Stock)
	s.Len(s.GetEmailSender().PaymentConfirmations, 1)
}

func (s *PaymentServiceSuite) TestVoidInvoiceIsNotSettled() {
	catalogItem := s.seedStockedItem(5)
	inv := s.seedSentInvoice(lo.ToPtr(catalogItem.ID), 2)
	s.NoError(s.GetStores().InvoiceRepo.UpdateStatus(s.GetContext(), inv.ID, types.InvoiceStatusVoid))
	s.stubCheckoutCompleted(inv.ID)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Received)
	s.False(resp.Handled)

	settled, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, settled.InvoiceStatus)
	s.Nil(settled.PaymentIntentID)

	stocked, err := s.GetStores().ItemRepo.Get(s.GetContext(), catalogItem.ID)
	s.NoError(err)
	s.Equal(int64(5), stocked.Stock)
	s.Empty(s.GetEmailSender().PaymentConfirmations)
}

func (s *PaymentServiceSuite) TestStockFloorsAtZero() {
	catalogItem := s.seedStockedItem(2)
	inv := s.seedSentInvoice(lo.ToPtr(catalogItem.ID), 5)
	s.stubCheckoutCompleted(inv.ID)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Handled)

	stocked, err := s.GetStores().ItemRepo.Get(s.GetContext(), catalogItem.ID)
	s.NoError(err)
	s.Equal(int64(0), stocked.Stock)
}

func (s *PaymentServiceSuite) TestLinesWithoutItemSkipStock() {
	inv := s.seedSentInvoice(nil, 2)
	s.stubCheckoutCompleted(inv.ID)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Handled)

	settled, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, settled.InvoiceStatus)
}

func (s *PaymentServiceSuite) TestBadSignatureRejected() {
	inv := s.seedSentInvoice(nil, 1)
	s.stubCheckoutCompleted(inv.ID)
	s.GetPaymentGateway().ValidSignature = "good"

	_, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "bad")
	s.Error(err)
	s.True(ierr.IsAuthenticity(err))

	unchanged, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, unchanged.InvoiceStatus)
}

func (s *PaymentServiceSuite) TestIgnoresOtherEventTypes() {
	inv := s.seedSentInvoice(nil, 1)
	s.stubCheckoutCompleted(inv.ID)
	s.GetPaymentGateway().Event.Type = stripesdk.EventType(types.WebhookEventTypeCheckoutSessionExpired)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Received)
	s.False(resp.Handled)

	unchanged, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, unchanged.InvoiceStatus)
}

func (s *PaymentServiceSuite) TestMissingInvoiceMetadataAcknowledged() {
	raw, err := json.Marshal(map[string]interface{}{"id": "cs_no_meta"})
	s.NoError(err)
	s.GetPaymentGateway().Event = &stripesdk.Event{
		ID:   "evt_test_2",
		Type: stripesdk.EventType(types.WebhookEventTypeCheckoutSessionCompleted),
		Data: &stripesdk.EventData{Raw: raw},
	}

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Received)
	s.False(resp.Handled)
}

func (s *PaymentServiceSuite) TestUnknownInvoiceAcknowledged() {
	s.stubCheckoutCompleted("inv_missing")

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Received)
	s.False(resp.Handled)
}

func (s *PaymentServiceSuite) TestConfirmationEmailFailureStillSettles() {
	inv := s.seedSentInvoice(nil, 1)
	s.stubCheckoutCompleted(inv.ID)
	s.GetEmailSender().Err = ierr.NewError("smtp down").Mark(ierr.ErrIntegration)

	resp, err := s.service.HandleWebhookEvent(s.GetContext(), []byte("{}"), "sig")
	s.NoError(err)
	s.True(resp.Handled)

	settled, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, settled.InvoiceStatus)
}
