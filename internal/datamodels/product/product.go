package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品模型
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:128;not null" json:"title"`
	Description string          `gorm:"size:512" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:255" json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"-"`
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List 分页查询，返回当前页数据和总条数
	List(ctx context.Context, offset, limit int) ([]*Product, int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
