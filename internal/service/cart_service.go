package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/cart"
)

// CartService 购物车服务
type CartService struct {
	repo cart.Repository
}

// NewCartService 创建购物车服务
func NewCartService(repo cart.Repository) *CartService {
	return &CartService{repo: repo}
}

// List 查询用户购物车（带商品信息）
func (s *CartService) List(ctx context.Context, userID int64) ([]*cart.Detail, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add 加入购物车
func (s *CartService) Add(ctx context.Context, userID, productID, quantity int64) (*cart.Item, error) {
	if productID <= 0 || quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	item := &cart.Item{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 修改数量
func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidCartItem
	}
	if err := s.repo.UpdateQuantity(ctx, userID, cartID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// Remove 移除条目
func (s *CartService) Remove(ctx context.Context, userID, cartID int64) error {
	if err := s.repo.Remove(ctx, userID, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}
