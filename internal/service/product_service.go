package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
)

// DefaultPageSize 商品列表每页条数
const DefaultPageSize = 6

// ProductService 商品服务
type ProductService struct {
	repo product.Repository
}

// NewProductService 创建商品服务
func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// ListPage 分页查询商品
func (s *ProductService) ListPage(ctx context.Context, page int) ([]*product.Product, *Pagination, error) {
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * DefaultPageSize
	list, total, err := s.repo.List(ctx, offset, DefaultPageSize)
	if err != nil {
		return nil, nil, err
	}
	totalPages := int((total + DefaultPageSize - 1) / DefaultPageSize)
	return list, &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

// GetByID 查询单个商品
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create 新建商品
func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
