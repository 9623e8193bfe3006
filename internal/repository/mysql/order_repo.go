package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/order"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

// PlaceOrder 单事务写入订单头 + 全部订单行。
// 闭包返回错误时 gorm 自动回滚并归还连接，所有出口都不会泄漏事务。
func (r *orderRepo) PlaceOrder(ctx context.Context, o *order.Order, items []*order.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = o.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListItemDetails(ctx context.Context, orderID int64) ([]*order.ItemDetail, error) {
	var list []*order.ItemDetail
	if err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, products.title AS product_name, products.image AS product_image").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	var list []*order.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []*order.Order
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
