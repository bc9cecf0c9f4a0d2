package repository

import (
	"context"

	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilters narrows product listings.
type ProductFilters struct {
	Category       string
	TargetAudience string
	DiscountedOnly bool
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	FindAll(ctx context.Context, page, limit int, filters ProductFilters) ([]models.Product, int64, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDiscount writes one discount percentage to every product in ids in a
	// single statement; 0 clears. Batch atomicity comes from the database.
	SetDiscount(ctx context.Context, ids []uuid.UUID, percentage int) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	StockSummary(ctx context.Context) (total int64, low int64, out int64, err error)
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product.
func (r *GormProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID retrieves a product by id.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs retrieves the products matching ids; missing ids are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll retrieves paginated products, newest first.
func (r *GormProductRepository) FindAll(ctx context.Context, page, limit int, filters ProductFilters) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.TargetAudience != "" {
		query = query.Where("target_audience = ?", filters.TargetAudience)
	}
	if filters.DiscountedOnly {
		query = query.Where("discount > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Update saves all fields of an existing product.
func (r *GormProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetDiscount applies one discount percentage across the id set in a single
// UPDATE. Returns the number of rows touched so the caller can report
// partial matches.
func (r *GormProductRepository) SetDiscount(ctx context.Context, ids []uuid.UUID, percentage int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("discount", percentage)
	return result.RowsAffected, result.Error
}

// CountByCategory returns the product count per category.
func (r *GormProductRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rr := range rows {
		counts[rr.Category] = rr.Count
	}
	return counts, nil
}

// StockSummary aggregates total stock plus low/out-of-stock product counts.
func (r *GormProductRepository) StockSummary(ctx context.Context) (int64, int64, int64, error) {
	type row struct {
		Total int64
		Low   int64
		Out   int64
	}
	var res row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select(
			"COALESCE(SUM(stock), 0) AS total, "+
				"COUNT(*) FILTER (WHERE stock > 0 AND stock < ?) AS low, "+
				"COUNT(*) FILTER (WHERE stock = 0) AS out",
			models.LowStockThreshold,
		).
		Scan(&res).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return res.Total, res.Low, res.Out, nil
}
