package services_test

import (
	"context"
	"testing"

	"github.com/YodHeVauHe/ShopWithKylie/cache"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var result []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindAll(_ context.Context, _, _ int, filters repository.ProductFilters) ([]models.Product, int64, error) {
	var result []models.Product
	for _, p := range m.products {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.TargetAudience != "" && p.TargetAudience != filters.TargetAudience {
			continue
		}
		if filters.DiscountedOnly && p.Discount == 0 {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *p
	m.products[p.ID] = &copied
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) SetDiscount(_ context.Context, ids []uuid.UUID, percentage int) (int64, error) {
	var updated int64
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			p.Discount = percentage
			updated++
		}
	}
	return updated, nil
}

func (m *mockProductRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, p := range m.products {
		counts[p.Category]++
	}
	return counts, nil
}

func (m *mockProductRepo) StockSummary(_ context.Context) (int64, int64, int64, error) {
	var total, low, out int64
	for _, p := range m.products {
		total += int64(p.Stock)
		switch {
		case p.Stock == 0:
			out++
		case p.Stock < models.LowStockThreshold:
			low++
		}
	}
	return total, low, out, nil
}

// --- Helpers ---

func newProductService(repo repository.ProductRepository) services.ProductService {
	return services.NewProductService(repo, cache.NoopProductCache{}, zap.NewNop())
}

func seedProduct(repo *mockProductRepo, name string, price int64, stock, discount int) *models.Product {
	p := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: "Sneakers",
		Price:    price,
		Stock:    stock,
		Discount: discount,
	}
	repo.products[p.ID] = p
	return p
}

// --- Tests ---

func TestService_CreateProduct(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	resp, svcErr := svc.Create(context.Background(), &models.CreateProductRequest{
		Name:     "Air Runner",
		Category: "Sneakers",
		Price:    150000,
		Stock:    30,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, models.StatusInStock, resp.Status)
	assert.Len(t, repo.products, 1)
}

func TestService_GetProduct_StatusDerivedFromStock(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	cases := []struct {
		stock  int
		status models.StockStatus
	}{
		{0, models.StatusOutOfStock},
		{1, models.StatusLowStock},
		{14, models.StatusLowStock},
		{15, models.StatusInStock},
		{100, models.StatusInStock},
	}
	for _, tc := range cases {
		p := seedProduct(repo, "Shoe", 100000, tc.stock, 0)
		resp, svcErr := svc.Get(context.Background(), p.ID)
		assert.Nil(t, svcErr)
		assert.Equal(t, tc.status, resp.Status, "stock %d", tc.stock)
	}
}

func TestService_GetProduct_NotFound(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	_, svcErr := svc.Get(context.Background(), uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestService_UpdateProduct_Partial(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	p := seedProduct(repo, "Old Name", 100000, 20, 0)

	newName := "New Name"
	newStock := 5
	resp, svcErr := svc.Update(context.Background(), p.ID, &models.UpdateProductRequest{
		Name:  &newName,
		Stock: &newStock,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, int64(100000), resp.Price, "untouched fields keep their values")
	assert.Equal(t, models.StatusLowStock, resp.Status, "status follows the new stock")
}

func TestService_DeleteProduct_NotFound(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	svcErr := svc.Delete(context.Background(), uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestService_ApplyBulkDiscount(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	p1 := seedProduct(repo, "A", 100000, 10, 0)
	p2 := seedProduct(repo, "B", 200000, 10, 5)
	missing := uuid.New()

	updated, svcErr := svc.ApplyBulkDiscount(context.Background(), &models.BulkDiscountRequest{
		ProductIDs:         []uuid.UUID{p1.ID, p2.ID, missing},
		DiscountPercentage: 25,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(2), updated, "missing ids are skipped, not errors")
	assert.Equal(t, 25, repo.products[p1.ID].Discount)
	assert.Equal(t, 25, repo.products[p2.ID].Discount, "existing discount is overwritten")
}

func TestService_RemoveBulkDiscount_SetsZero(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	p := seedProduct(repo, "A", 100000, 10, 40)

	updated, svcErr := svc.RemoveBulkDiscount(context.Background(), &models.BulkDiscountRemoveRequest{
		ProductIDs: []uuid.UUID{p.ID},
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(1), updated)
	assert.Equal(t, 0, repo.products[p.ID].Discount)
}

func TestService_ListProducts_DiscountedOnly(t *testing.T) {
	repo := newMockProductRepo()
	svc := newProductService(repo)

	seedProduct(repo, "Plain", 100000, 10, 0)
	seedProduct(repo, "Sale", 100000, 10, 30)

	products, total, svcErr := svc.List(context.Background(), 1, 10, repository.ProductFilters{DiscountedOnly: true})
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
	assert.Equal(t, "Sale", products[0].Name)
}
