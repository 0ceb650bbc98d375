package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

type mockRepo struct {
	products map[int64]*models.Product
}

func (m *mockRepo) ListActive(context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Status == models.ProductActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockRepo) ListAll(context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetActive(ctx context.Context, id int64) (*models.Product, error) {
	p, err := m.Get(ctx, id)
	if err != nil || p.Status != models.ProductActive {
		return nil, apperr.NotFound("product not found")
	}
	return p, nil
}

func (m *mockRepo) Create(_ context.Context, p *models.Product) error {
	p.ID = int64(len(m.products) + 1)
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return apperr.NotFound("product not found")
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockRepo) Deactivate(_ context.Context, id int64) error {
	p, ok := m.products[id]
	if !ok {
		return apperr.NotFound("product not found")
	}
	p.Status = models.ProductInactive
	return nil
}

type mockStock struct {
	last *models.StockMovement
}

func (m *mockStock) Adjust(_ context.Context, mv *models.StockMovement) (int, error) {
	m.last = mv
	if mv.Type == models.StockOut {
		return 10 - mv.Quantity, nil
	}
	return 10 + mv.Quantity, nil
}

var (
	_ Repository    = (*mockRepo)(nil)
	_ StockAdjuster = (*mockStock)(nil)
)

func newTestService() (*Service, *mockRepo, *mockStock) {
	repo := &mockRepo{products: map[int64]*models.Product{}}
	stock := &mockStock{}
	return NewService(repo, stock), repo, stock
}

func TestService_Create(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Create(context.Background(), ProductInput{
		Name:     "Beras Pandan Wangi 5kg",
		Price:    decimal.RequireFromString("65000.456"),
		Stock:    12,
		Category: "sembako",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "beras-pandan-wangi-5kg", p.Slug)
	assert.Equal(t, models.ProductActive, p.Status)
	assert.Equal(t, "65000.46", p.Price.StringFixed(2))
	assert.Nil(t, p.Description)
	require.NotNil(t, p.Category)
	assert.Equal(t, "sembako", *p.Category)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	cases := map[string]ProductInput{
		"no name":    {Price: decimal.NewFromInt(1)},
		"zero price": {Name: "x"},
		"bad status": {Name: "x", Price: decimal.NewFromInt(1), Status: "deleted"},
		"neg stock":  {Name: "x", Price: decimal.NewFromInt(1), Stock: -1},
	}
	for name, in := range cases {
		_, err := svc.Create(ctx, in)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), name)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	p, err := svc.Create(ctx, ProductInput{Name: "Gula", Price: decimal.NewFromInt(15000), Stock: 4})
	require.NoError(t, err)

	up, err := svc.Update(ctx, p.ID, ProductInput{Name: "Gula Pasir", Price: decimal.NewFromInt(16000)})
	require.NoError(t, err)
	assert.Equal(t, "gula-pasir", up.Slug)
	assert.Equal(t, 4, repo.products[p.ID].Stock)

	_, err = svc.Update(ctx, 99, ProductInput{Name: "x", Price: decimal.NewFromInt(1)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_AdjustStock(t *testing.T) {
	svc, _, stock := newTestService()
	ctx := context.Background()

	level, err := svc.AdjustStock(ctx, 3, "masuk", 5, " restock ")
	require.NoError(t, err)
	assert.Equal(t, 15, level)
	assert.Equal(t, models.StockIn, stock.last.Type)
	require.NotNil(t, stock.last.Note)
	assert.Equal(t, "restock", *stock.last.Note)

	level, err = svc.AdjustStock(ctx, 3, "out", 4, "")
	require.NoError(t, err)
	assert.Equal(t, 6, level)
	assert.Nil(t, stock.last.Note)

	_, err = svc.AdjustStock(ctx, 3, "sideways", 1, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.AdjustStock(ctx, 3, "in", 0, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
