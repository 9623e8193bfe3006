package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Item 购物车条目
type Item struct {
	ID        int64     `gorm:"primaryKey" json:"cartId"`
	UserID    int64     `gorm:"index;not null" json:"-"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 保持与原表名一致
func (Item) TableName() string {
	return "cart_items"
}

// Detail 购物车条目 + 商品信息，用于购物车页面
type Detail struct {
	CartID    int64           `json:"cartId"`
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// Repository 购物车仓储接口
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*Detail, error)
	Add(ctx context.Context, item *Item) error
	// UpdateQuantity 只允许修改本人条目，未命中返回 gorm.ErrRecordNotFound
	UpdateQuantity(ctx context.Context, userID, cartID, quantity int64) error
	Remove(ctx context.Context, userID, cartID int64) error
}
