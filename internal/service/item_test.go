package service

import (
	"testing"

	"github.com/michaello/backoffice/internal/api/dto"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/testutil"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ItemServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ItemService
}

func TestItemService(t *testing.T) {
	suite.Run(t, new(ItemServiceSuite))
}

func (s *ItemServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewItemService(ServiceParams{
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

func (s *ItemServiceSuite) createItem(sku string) *dto.ItemResponse {
	resp, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:         sku,
		Name:        "Gold Band",
		Metal:       types.MetalGold,
		Purity:      types.Purity14K,
		WeightGrams: decimal.RequireFromString("3.100"),
		CostPrice:   decimal.NewFromInt(300),
		Price:       decimal.NewFromInt(450),
		Stock:       4,
	})
	s.NoError(err)
	return resp
}

func (s *ItemServiceSuite) TestCreateItem() {
	resp := s.createItem("BAND-001")
	s.Equal("BAND-001", resp.SKU)
	s.True(resp.Active)
	s.Equal(int64(4), resp.Stock)
	s.True(resp.ProfitMargin.Equal(decimal.NewFromInt(50)))
}

func (s *ItemServiceSuite) TestCreateItemNegativeCostPrice() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:       "BAND-004",
		Name:      "Band",
		Metal:     types.MetalGold,
		Purity:    types.Purity14K,
		CostPrice: decimal.NewFromInt(-10),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ItemServiceSuite) TestCreateItemDuplicateSKU() {
	s.createItem("BAND-001")

	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:    "BAND-001",
		Name:   "Another Band",
		Metal:  types.MetalGold,
		Purity: types.Purity14K,
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ItemServiceSuite) TestCreateItemUnknownCategory() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:        "BAND-002",
		Name:       "Band",
		CategoryID: lo.ToPtr("cat_missing"),
		Metal:      types.MetalGold,
		Purity:     types.Purity14K,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ItemServiceSuite) TestCreateItemInvalidMetal() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:    "BAND-003",
		Name:   "Band",
		Metal:  types.Metal("titanium"),
		Purity: types.Purity14K,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ItemServiceSuite) TestUpdateItemStock() {
	created := s.createItem("BAND-001")

	resp, err := s.service.UpdateItem(s.GetContext(), created.ID, dto.UpdateItemRequest{
		Stock: lo.ToPtr(int64(9)),
		Price: lo.ToPtr(decimal.NewFromInt(475)),
	})
	s.NoError(err)
	s.Equal(int64(9), resp.Stock)
	s.True(resp.Price.Equal(decimal.NewFromInt(475)))
}

func (s *ItemServiceSuite) TestListItemsBySearch() {
	s.createItem("BAND-001")

	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		SKU:    "CHAIN-001",
		Name:   "Silver Chain",
		Metal:  types.MetalSilver,
		Purity: types.Purity925K,
	})
	s.NoError(err)

	resp, err := s.service.ListItems(s.GetContext(), &types.ItemFilter{
		QueryFilter: types.GetDefaultQueryFilter(),
		Search:      lo.ToPtr("chain"),
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("CHAIN-001", resp.Items[0].SKU)
}

func (s *ItemServiceSuite) TestDeleteItemHidesIt() {
	created := s.createItem("BAND-001")

	s.NoError(s.service.DeleteItem(s.GetContext(), created.ID))

	_, err := s.service.GetItem(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ItemServiceSuite) TestCategoryLifecycle() {
	created, err := s.service.CreateCategory(s.GetContext(), dto.CreateCategoryRequest{
		Name:        "Rings",
		Description: "Finger jewellery",
	})
	s.NoError(err)

	got, err := s.service.GetCategory(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Rings", got.Name)

	updated, err := s.service.UpdateCategory(s.GetContext(), created.ID, dto.UpdateCategoryRequest{
		Name: lo.ToPtr("Wedding Rings"),
	})
	s.NoError(err)
	s.Equal("Wedding Rings", updated.Name)

	s.NoError(s.service.DeleteCategory(s.GetContext(), created.ID))
	_, err = s.service.GetCategory(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
