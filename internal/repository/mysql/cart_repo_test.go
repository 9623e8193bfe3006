package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/cart"
)

func TestCart_AddAndList(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewCartRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &cart.Item{UserID: 42, ProductID: 7, Quantity: 2}))
	require.NoError(t, repo.Add(ctx, &cart.Item{UserID: 42, ProductID: 9, Quantity: 1}))
	require.NoError(t, repo.Add(ctx, &cart.Item{UserID: 99, ProductID: 7, Quantity: 5}))

	list, err := repo.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 2, "only the user's own items are visible")

	assert.Equal(t, "Classic White Shirt", list[0].Title)
	assert.Equal(t, "/img/shop/7.jpg", list[0].Image)
	assert.True(t, list[0].Price.Equal(d("10.00")))
	assert.Equal(t, int64(2), list[0].Quantity)
}

func TestCart_UpdateQuantity(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item := &cart.Item{UserID: 42, ProductID: 7, Quantity: 2}
	require.NoError(t, repo.Add(ctx, item))

	require.NoError(t, repo.UpdateQuantity(ctx, 42, item.ID, 5))

	list, err := repo.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(5), list[0].Quantity)

	// 其他用户不能改别人的条目
	assert.ErrorIs(t, repo.UpdateQuantity(ctx, 99, item.ID, 1), gorm.ErrRecordNotFound)
}

func TestCart_Remove(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item := &cart.Item{UserID: 42, ProductID: 7, Quantity: 2}
	require.NoError(t, repo.Add(ctx, item))

	assert.ErrorIs(t, repo.Remove(ctx, 99, item.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Remove(ctx, 42, item.ID))

	list, err := repo.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, list)
}
