package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// Repository wires together catalog persistence for products and salon
// services.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

type listProductsParams struct {
	Category        *string
	IncludeInactive bool
	Limit           int
	Cursor          *pagination.Cursor
}

// ListProducts returns a page of products ordered by newest first.
func (r *Repository) ListProducts(ctx context.Context, params listProductsParams) ([]models.Product, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if !params.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var products []models.Product
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	if len(products) > normalized {
		next := products[normalized]
		products = products[:normalized]
		return products, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return products, nil, nil
}

// FindProductByID loads a single product row.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByIDs loads the active products referenced by a cart.
func (r *Repository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SetProductStock sets the absolute stock level for a product.
func (r *Repository) SetProductStock(ctx context.Context, id uuid.UUID, stock int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", stock)
	return result.RowsAffected, result.Error
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListSalonServices returns salon services, newest first. The catalog is
// small so no cursor is needed.
func (r *Repository) ListSalonServices(ctx context.Context, filter ServiceFilter) ([]models.SalonService, error) {
	query := r.db.WithContext(ctx).Model(&models.SalonService{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	var services []models.SalonService
	if err := query.Order("created_at DESC, id DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindSalonServiceByID loads a single salon service row.
func (r *Repository) FindSalonServiceByID(ctx context.Context, id uuid.UUID) (*models.SalonService, error) {
	var service models.SalonService
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// CreateSalonService inserts a new salon service row.
func (r *Repository) CreateSalonService(ctx context.Context, service *models.SalonService) (*models.SalonService, error) {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// UpdateSalonService updates an existing salon service row.
func (r *Repository) UpdateSalonService(ctx context.Context, service *models.SalonService) (*models.SalonService, error) {
	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteSalonService removes a salon service by ID.
func (r *Repository) DeleteSalonService(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SalonService{}).Error
}
