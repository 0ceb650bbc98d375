package cart

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
	items  map[int64]models.CartLine
	nextID int64
	writes int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]models.CartLine{}}
}

func (m *mockRepo) Lines(_ context.Context, _ int64) ([]models.CartLine, error) {
	out := make([]models.CartLine, 0, len(m.items))
	for id := int64(1); id <= m.nextID; id++ {
		if l, ok := m.items[id]; ok {
			l.LineTotal = l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockRepo) AddOrMerge(_ context.Context, _ int64, productID int64, qty int) error {
	m.writes++
	for id, l := range m.items {
		if l.ProductID == productID {
			l.Quantity += qty
			m.items[id] = l
			return nil
		}
	}
	m.nextID++
	m.items[m.nextID] = models.CartLine{ID: m.nextID, ProductID: productID, Price: decimal.NewFromInt(1500), Quantity: qty}
	return nil
}

func (m *mockRepo) UpdateQuantity(_ context.Context, _ int64, itemID int64, qty int) error {
	m.writes++
	l, ok := m.items[itemID]
	if !ok {
		return apperr.NotFound("cart item not found")
	}
	l.Quantity = qty
	m.items[itemID] = l
	return nil
}

func (m *mockRepo) Remove(_ context.Context, _ int64, itemID int64) error {
	m.writes++
	if _, ok := m.items[itemID]; !ok {
		return apperr.NotFound("cart item not found")
	}
	delete(m.items, itemID)
	return nil
}

func (m *mockRepo) Clear(context.Context, int64) error {
	m.writes++
	m.items = map[int64]models.CartLine{}
	return nil
}

type mockProducts map[int64]bool

func (m mockProducts) GetActive(_ context.Context, id int64) (*models.Product, error) {
	if !m[id] {
		return nil, apperr.NotFound("product not found")
	}
	return &models.Product{ID: id, Status: models.ProductActive}, nil
}

var (
	_ Repository = (*mockRepo)(nil)
	_ Products   = mockProducts(nil)
)

func TestService_AddMergesQuantity(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, mockProducts{3: true})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7, 3, 2))
	require.NoError(t, svc.Add(ctx, 7, 3, 3))

	sum, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, 5, sum.Items[0].Quantity)
	assert.Equal(t, 5, sum.Count)
	assert.True(t, decimal.NewFromInt(7500).Equal(sum.Total))
}

func TestService_AddRejects(t *testing.T) {
	svc := NewService(newMockRepo(), mockProducts{3: true})
	ctx := context.Background()

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.Add(ctx, 7, 3, 0)))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.Add(ctx, 7, 0, 1)))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Add(ctx, 7, 4, 1)))
}

func TestService_UpdateQuantity(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, mockProducts{3: true})
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, 7, 3, 2))
	writes := repo.writes

	for _, qty := range []int{0, -1} {
		err := svc.UpdateQuantity(ctx, 7, 1, qty)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	assert.Equal(t, writes, repo.writes, "rejected updates must not reach the store")
	assert.Equal(t, 2, repo.items[1].Quantity)

	require.NoError(t, svc.UpdateQuantity(ctx, 7, 1, 9))
	assert.Equal(t, 9, repo.items[1].Quantity)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.UpdateQuantity(ctx, 7, 42, 1)))
}

func TestService_RemoveAndClear(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, mockProducts{3: true, 4: true})
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, 7, 3, 1))
	require.NoError(t, svc.Add(ctx, 7, 4, 1))

	require.NoError(t, svc.Remove(ctx, 7, 1))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Remove(ctx, 7, 1)))

	require.NoError(t, svc.Clear(ctx, 7))
	sum, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, sum.Items)
	assert.True(t, sum.Total.IsZero())
}
