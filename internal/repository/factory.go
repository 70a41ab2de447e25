package repository

import (
	"github.com/michaello/backoffice/internal/cache"
	"github.com/michaello/backoffice/internal/domain/certificate"
	"github.com/michaello/backoffice/internal/domain/customer"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/domain/item"
	"github.com/michaello/backoffice/internal/domain/supplier"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	postgresRepo "github.com/michaello/backoffice/internal/repository/postgres"
)

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewItemRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) item.Repository {
	return postgresRepo.NewItemRepository(db, logger, cache)
}

func NewCategoryRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) item.CategoryRepository {
	return postgresRepo.NewCategoryRepository(db, logger, cache)
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger, cache)
}

func NewSupplierRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) supplier.Repository {
	return postgresRepo.NewSupplierRepository(db, logger, cache)
}

func NewCertificateRepository(db *postgres.DB, logger *logger.Logger) certificate.Repository {
	return postgresRepo.NewCertificateRepository(db, logger)
}
