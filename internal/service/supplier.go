package service

import (
	"context"

	"github.com/michaello/backoffice/internal/api/dto"
	"github.com/michaello/backoffice/internal/types"
)

// SupplierService manages sourcing contacts for the catalog.
type SupplierService interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context, filter *types.ContactFilter) (*dto.ListSuppliersResponse, error)
	UpdateSupplier(ctx context.Context, id string, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type supplierService struct {
	ServiceParams
}

func NewSupplierService(params ServiceParams) SupplierService {
	return &supplierService{
		ServiceParams: params,
	}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sup := req.ToSupplier(ctx)
	if err := s.SupplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}

	s.Logger.Infow("supplier created",
		"supplier_id", sup.ID,
	)

	return &dto.SupplierResponse{Supplier: sup}, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	sup, err := s.SupplierRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{Supplier: sup}, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, filter *types.ContactFilter) (*dto.ListSuppliersResponse, error) {
	if filter == nil {
		filter = &types.ContactFilter{QueryFilter: types.GetDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	suppliers, err := s.SupplierRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.SupplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SupplierResponse, len(suppliers))
	for i, sup := range suppliers {
		responses[i] = &dto.SupplierResponse{Supplier: sup}
	}

	response := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sup, err := s.SupplierRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.VATNumber != nil {
		sup.VATNumber = *req.VATNumber
	}
	if req.Email != nil {
		sup.Email = *req.Email
	}
	if req.Phone != nil {
		sup.Phone = *req.Phone
	}
	if req.Address != nil {
		sup.Address = *req.Address
	}
	if req.Notes != nil {
		sup.Notes = *req.Notes
	}

	if err := s.SupplierRepo.Update(ctx, sup); err != nil {
		return nil, err
	}

	return &dto.SupplierResponse{Supplier: sup}, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id string) error {
	if _, err := s.SupplierRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.SupplierRepo.Delete(ctx, id)
}
