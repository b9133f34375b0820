package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// Service exposes catalog reads for the storefront and catalog management
// for admins.
type Service interface {
	ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	SetProductStock(ctx context.Context, adjustment StockAdjustment) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListSalonServices(ctx context.Context, filter ServiceFilter) ([]models.SalonService, error)
	GetSalonService(ctx context.Context, id uuid.UUID) (*models.SalonService, error)
	CreateSalonService(ctx context.Context, input ServiceInput) (*models.SalonService, error)
	UpdateSalonService(ctx context.Context, id uuid.UUID, input ServiceInput) (*models.SalonService, error)
	DeleteSalonService(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	cursor, err := pagination.ParseCursor(filter.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	if filter.Category != nil {
		if _, err := enums.ParseProductCategory(*filter.Category); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	products, next, err := s.repo.ListProducts(ctx, listProductsParams{
		Category:        filter.Category,
		IncludeInactive: filter.IncludeInactive,
		Limit:           filter.Pagination.Limit,
		Cursor:          cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	page := &ProductPage{Products: products}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		page.NextCursor = &encoded
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product, err := productFromInput(&models.Product{}, input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := productFromInput(existing, input)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

func (s *service) SetProductStock(ctx context.Context, adjustment StockAdjustment) error {
	if adjustment.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	affected, err := s.repo.SetProductStock(ctx, adjustment.ProductID, adjustment.Stock)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set product stock")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListSalonServices(ctx context.Context, filter ServiceFilter) ([]models.SalonService, error) {
	if filter.Category != nil {
		if _, err := enums.ParseServiceCategory(*filter.Category); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	services, err := s.repo.ListSalonServices(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list salon services")
	}
	return services, nil
}

func (s *service) GetSalonService(ctx context.Context, id uuid.UUID) (*models.SalonService, error) {
	svc, err := s.repo.FindSalonServiceByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "salon service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load salon service")
	}
	return svc, nil
}

func (s *service) CreateSalonService(ctx context.Context, input ServiceInput) (*models.SalonService, error) {
	svc, err := salonServiceFromInput(&models.SalonService{}, input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateSalonService(ctx, svc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create salon service")
	}
	return created, nil
}

func (s *service) UpdateSalonService(ctx context.Context, id uuid.UUID, input ServiceInput) (*models.SalonService, error) {
	existing, err := s.GetSalonService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, err := salonServiceFromInput(existing, input)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateSalonService(ctx, svc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update salon service")
	}
	return updated, nil
}

func (s *service) DeleteSalonService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSalonService(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSalonService(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete salon service")
	}
	return nil
}

func productFromInput(product *models.Product, input ProductInput) (*models.Product, error) {
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.PriceSatang < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if input.PreOrderDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pre-order days must not be negative")
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = category
	product.PriceSatang = input.PriceSatang
	product.Stock = input.Stock
	product.PreOrderDays = input.PreOrderDays
	product.LowStockThreshold = input.LowStockThreshold
	product.ImageURL = input.ImageURL
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	} else if product.ID == uuid.Nil {
		product.IsActive = true
	}
	return product, nil
}

func salonServiceFromInput(svc *models.SalonService, input ServiceInput) (*models.SalonService, error) {
	category, err := enums.ParseServiceCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.PriceSatang < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.DurationMinutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}

	svc.Name = input.Name
	svc.Description = input.Description
	svc.Category = category
	svc.PriceSatang = input.PriceSatang
	svc.DurationMinutes = input.DurationMinutes
	svc.ImageURL = input.ImageURL
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	} else if svc.ID == uuid.Nil {
		svc.IsActive = true
	}
	return svc, nil
}
