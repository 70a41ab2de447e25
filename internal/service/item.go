package service

import (
	"context"

	"github.com/michaello/backoffice/internal/api/dto"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// ItemService manages the jewelry catalog and its categories.
type ItemService interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*dto.ItemResponse, error)
	ListItems(ctx context.Context, filter *types.ItemFilter) (*dto.ListItemsResponse, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, filter *types.QueryFilter) ([]*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

type itemService struct {
	ServiceParams
}

func NewItemService(params ServiceParams) ItemService {
	return &itemService{
		ServiceParams: params,
	}
}

func (s *itemService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.Get(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.SupplierID != nil {
		if _, err := s.SupplierRepo.Get(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	i := req.ToItem(ctx)
	if err := i.Validate(); err != nil {
		return nil, err
	}

	if err := s.ItemRepo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.Logger.Infow("item created",
		"item_id", i.ID,
		"sku", i.SKU,
	)

	return dto.NewItemResponse(i), nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	i, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(i), nil
}

func (s *itemService) ListItems(ctx context.Context, filter *types.ItemFilter) (*dto.ListItemsResponse, error) {
	if filter == nil {
		filter = &types.ItemFilter{QueryFilter: types.GetDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.ItemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ItemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ItemResponse, len(items))
	for i, it := range items {
		responses[i] = dto.NewItemResponse(it)
	}

	response := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		i.SKU = *req.SKU
	}
	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.Get(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		i.CategoryID = req.CategoryID
	}
	if req.SupplierID != nil {
		if _, err := s.SupplierRepo.Get(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
		i.SupplierID = req.SupplierID
	}
	if req.Metal != nil {
		i.Metal = *req.Metal
	}
	if req.Purity != nil {
		i.Purity = *req.Purity
	}
	if req.StoneDetails != nil {
		i.StoneDetails = *req.StoneDetails
	}
	if req.WeightGrams != nil {
		i.WeightGrams = *req.WeightGrams
	}
	if req.CostPrice != nil {
		i.CostPrice = *req.CostPrice
	}
	if req.Price != nil {
		i.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ierr.NewError("item validation failed").
				WithHint("Stock must be non negative").
				Mark(ierr.ErrValidation)
		}
		i.Stock = *req.Stock
	}
	if req.Active != nil {
		i.Active = *req.Active
	}

	if err := i.Validate(); err != nil {
		return nil, err
	}

	if err := s.ItemRepo.Update(ctx, i); err != nil {
		return nil, err
	}

	return dto.NewItemResponse(i), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.ItemRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.ItemRepo.Delete(ctx, id)
}

func (s *itemService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCategory(ctx)
	if err := s.CategoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &dto.CategoryResponse{Category: c}, nil
}

func (s *itemService) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := s.CategoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{Category: c}, nil
}

func (s *itemService) ListCategories(ctx context.Context, filter *types.QueryFilter) ([]*dto.CategoryResponse, error) {
	if filter == nil {
		defaultFilter := types.GetDefaultQueryFilter()
		filter = &defaultFilter
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	categories, err := s.CategoryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = &dto.CategoryResponse{Category: c}
	}
	return responses, nil
}

func (s *itemService) UpdateCategory(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CategoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := s.CategoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return &dto.CategoryResponse{Category: c}, nil
}

func (s *itemService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.CategoryRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.CategoryRepo.Delete(ctx, id)
}
