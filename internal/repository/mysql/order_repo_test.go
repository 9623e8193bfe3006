package mysql

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/order"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&product.Product{ID: 7, Title: "Classic White Shirt", Price: d("10.00"), Image: "/img/shop/7.jpg"}).Error)
	require.NoError(t, db.Create(&product.Product{ID: 9, Title: "Men's Belt", Price: d("5.00"), Image: "/img/shop/9.jpg"}).Error)
}

// testOrder 以幂等键派生支付引用，避免不同测试订单撞支付单号唯一索引
func testOrder(key string) *order.Order {
	return &order.Order{
		UserID:         42,
		Total:          d("25.00"),
		PaymentOrderID: "order_" + key,
		PaymentID:      "pay_" + key,
		IdempotencyKey: key,
	}
}

func testItems() []*order.Item {
	return []*order.Item{
		{ProductID: 7, Quantity: 2, Price: d("10.00")},
		{ProductID: 9, Quantity: 1, Price: d("5.00")},
	}
}

func TestPlaceOrder_WritesHeaderAndAllItems(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := testOrder("checkout-1")
	require.NoError(t, repo.PlaceOrder(ctx, o, testItems()))
	require.NotZero(t, o.ID)

	var headers, rows int64
	require.NoError(t, db.Model(&order.Order{}).Count(&headers).Error)
	require.NoError(t, db.Model(&order.Item{}).Where("order_id = ?", o.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), headers)
	assert.Equal(t, int64(2), rows)
}

func TestPlaceOrder_RollsBackOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	// 第 2 行违反 quantity > 0 约束，整个事务必须回滚
	items := testItems()
	items[1].Quantity = -1

	err := repo.PlaceOrder(ctx, testOrder("checkout-bad"), items)
	require.Error(t, err)

	var headers, rows int64
	require.NoError(t, db.Model(&order.Order{}).Count(&headers).Error)
	require.NoError(t, db.Model(&order.Item{}).Count(&rows).Error)
	assert.Zero(t, headers, "no order header may survive a failed commit")
	assert.Zero(t, rows, "no line item may survive a failed commit")
}

func TestPlaceOrder_DuplicateIdempotencyKey(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.PlaceOrder(ctx, testOrder("checkout-1"), testItems()))

	// 同用户同幂等键，即便换了支付引用也必须被唯一索引拦下
	second := testOrder("checkout-1")
	second.PaymentOrderID = "order_fresh"
	second.PaymentID = "pay_fresh"
	err := repo.PlaceOrder(ctx, second, testItems())
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var headers int64
	require.NoError(t, db.Model(&order.Order{}).Count(&headers).Error)
	assert.Equal(t, int64(1), headers, "the duplicate attempt must not leave a second order")

	prev, err := repo.GetByIdempotencyKey(ctx, 42, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), prev.UserID)

	// 幂等键按用户隔离，别的用户查不到这条订单
	_, err = repo.GetByIdempotencyKey(ctx, 99, "checkout-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPlaceOrder_SameIdempotencyKeyDifferentUsers(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.PlaceOrder(ctx, testOrder("checkout-1"), testItems()))

	other := testOrder("checkout-1")
	other.UserID = 99
	other.PaymentOrderID = "order_other"
	other.PaymentID = "pay_other"
	require.NoError(t, repo.PlaceOrder(ctx, other, testItems()),
		"idempotency keys are scoped per user, not global")

	var headers int64
	require.NoError(t, db.Model(&order.Order{}).Count(&headers).Error)
	assert.Equal(t, int64(2), headers)
}

func TestPlaceOrder_PaymentOrderIDSettlesOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first := testOrder("checkout-a")
	require.NoError(t, repo.PlaceOrder(ctx, first, testItems()))

	// 换幂等键重放同一笔支付，必须被支付单号唯一索引拦下
	replay := testOrder("checkout-b")
	replay.PaymentOrderID = first.PaymentOrderID
	replay.PaymentID = first.PaymentID
	err := repo.PlaceOrder(ctx, replay, testItems())
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var headers int64
	require.NoError(t, db.Model(&order.Order{}).Count(&headers).Error)
	assert.Equal(t, int64(1), headers, "one verified payment may settle exactly one order")
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListItemDetails_JoinsProductInfo(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := testOrder("checkout-1")
	require.NoError(t, repo.PlaceOrder(ctx, o, testItems()))

	details, err := repo.ListItemDetails(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, int64(7), details[0].ProductID)
	assert.Equal(t, "Classic White Shirt", details[0].ProductName)
	assert.Equal(t, "/img/shop/7.jpg", details[0].ProductImage)
	assert.Equal(t, int64(2), details[0].Quantity)
	assert.True(t, details[0].Price.Equal(d("10.00")))

	assert.Equal(t, "Men's Belt", details[1].ProductName)
}

func TestListByUser_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for _, key := range []string{"k1", "k2", "k3"} {
		require.NoError(t, repo.PlaceOrder(ctx, testOrder(key), testItems()))
	}
	other := testOrder("other-user")
	other.UserID = 99
	require.NoError(t, repo.PlaceOrder(ctx, other, testItems()))

	list, err := repo.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.Greater(t, list[1].ID, list[2].ID)
}

func TestListRecent_Limit(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for _, key := range []string{"k1", "k2", "k3"} {
		require.NoError(t, repo.PlaceOrder(ctx, testOrder(key), testItems()))
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
}
