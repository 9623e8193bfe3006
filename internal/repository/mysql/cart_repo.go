package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]*cart.Detail, error) {
	var list []*cart.Detail
	if err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id AS cart_id, cart_items.product_id, products.title, products.image, products.price, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id").
		Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepo) Add(ctx context.Context, item *cart.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, userID, cartID, quantity int64) error {
	res := r.db.WithContext(ctx).
		Model(&cart.Item{}).
		Where("id = ? AND user_id = ?", cartID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, cartID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&cart.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
