package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单头。支付引用（网关订单号 + 支付流水号）与订单同一事务落库，
// 订单创建后不再修改。
// 幂等键按用户唯一，不同用户可以撞键；支付单号全局唯一，
// 一笔已验签的支付只能结算一单。
type Order struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	UserID         int64           `gorm:"uniqueIndex:uniq_user_idem,priority:1;not null" json:"user_id"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentOrderID string          `gorm:"uniqueIndex;size:64;not null" json:"payment_order_id"`
	PaymentID      string          `gorm:"size:64;not null" json:"payment_id"`
	IdempotencyKey string          `gorm:"uniqueIndex:uniq_user_idem,priority:2;size:64;not null" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"-"`
}

// Item 订单行，和订单头同一事务创建，不单独增删
type Item struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	OrderID   int64           `gorm:"index;not null" json:"order_id"`
	ProductID int64           `gorm:"index;not null" json:"product_id"`
	Quantity  int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // 下单时单价
	CreatedAt time.Time       `json:"-"`
}

// TableName 保持与原表名一致
func (Item) TableName() string {
	return "order_items"
}

// ItemDetail 订单行 + 商品名称/图片，用于订单详情页
type ItemDetail struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
}

// Repository 订单仓储接口
type Repository interface {
	// PlaceOrder 在单个事务内写入订单头和全部订单行，成功后回填 o.ID。
	// 任一行写入失败则整体回滚，不会留下部分数据。
	PlaceOrder(ctx context.Context, o *Order, items []*Item) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	// GetByIdempotencyKey 按用户查找幂等键对应的订单，幂等键跨用户不共享
	GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*Order, error)
	ListItemDetails(ctx context.Context, orderID int64) ([]*ItemDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
}
