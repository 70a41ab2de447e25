package service

import (
	"testing"

	"github.com/michaello/backoffice/internal/api/dto"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/testutil"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewCustomerService(ServiceParams{
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

func (s *CustomerServiceSuite) TestCreateCustomer() {
	resp, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:    "Ana Kowalska",
		Email:   "ana@example.com",
		Country: "PL",
	})
	s.NoError(err)
	s.Equal("Ana Kowalska", resp.Name)
	s.NotEmpty(resp.ID)
}

func (s *CustomerServiceSuite) TestCreateCustomerRequiresName() {
	_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Email: "nameless@example.com",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestCreateCustomerInvalidCountry() {
	_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:    "Ana",
		Country: "XX",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestUpdateCustomerPatchesFields() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Ana Kowalska",
		Email: "ana@example.com",
	})
	s.NoError(err)

	updated, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Phone: lo.ToPtr("+48 600 000 000"),
	})
	s.NoError(err)
	s.Equal("+48 600 000 000", updated.Phone)
	s.Equal("ana@example.com", updated.Email)
}

func (s *CustomerServiceSuite) TestListCustomersBySearch() {
	for _, name := range []string{"Ana Kowalska", "Jan Nowak"} {
		_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{Name: name})
		s.NoError(err)
	}

	resp, err := s.service.ListCustomers(s.GetContext(), &types.ContactFilter{
		QueryFilter: types.GetDefaultQueryFilter(),
		Search:      lo.ToPtr("nowak"),
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Jan Nowak", resp.Items[0].Name)
}

func (s *CustomerServiceSuite) TestDeleteCustomerHidesIt() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{Name: "Ana"})
	s.NoError(err)

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	_, err = s.service.GetCustomer(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
