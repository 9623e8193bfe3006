package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/order"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/events"
)

// PaymentChecker 查询支付是否已通过验签
type PaymentChecker interface {
	Verified(ctx context.Context, intentID string) (string, error)
}

// OrderEvents 下单成功事件发布接口
type OrderEvents interface {
	PublishOrderPlaced(ctx context.Context, evt *events.OrderPlaced) error
}

// OrderService 订单主流程：校验、原子落库、查询
type OrderService struct {
	repo        order.Repository
	productRepo product.Repository
	payments    PaymentChecker
	events      OrderEvents
}

// NewOrderService 创建订单服务
func NewOrderService(repo order.Repository, productRepo product.Repository, payments PaymentChecker, evts OrderEvents) *OrderService {
	return &OrderService{
		repo:        repo,
		productRepo: productRepo,
		payments:    payments,
		events:      evts,
	}
}

// CartItem 下单入参中的一条购物车条目
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PlaceOrderInput 下单入参
type PlaceOrderInput struct {
	UserID         int64
	Items          []CartItem
	Total          decimal.Decimal
	PaymentOrderID string
	PaymentID      string
	IdempotencyKey string
}

// PlaceOrder 下单。所有校验都在事务开启前完成，校验失败不产生任何写入：
//  1. 条目非空、数量为正、单价非负；
//  2. 单价与商品表一致，合计与提交的总额一致（金额不信任客户端）；
//  3. 支付必须已通过验签，且 paymentID 与验签记录一致；
//  4. 同一用户重复提交同一幂等键时返回首次创建的订单，不会生成第二笔；
//  5. 同一笔支付只能结算一单，换幂等键重放会被支付单号唯一索引拦下。
//
// 通过后单事务写入订单头 + 全部订单行。
func (s *OrderService) PlaceOrder(ctx context.Context, in *PlaceOrderInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if in.IdempotencyKey == "" {
		return nil, ErrMissingIdemKey
	}

	sum := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.Price.IsNegative() {
			return nil, ErrInvalidCartItem
		}
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			GetMonitor().RecordDBError()
			return nil, err
		}
		if !p.Price.Equal(item.Price) {
			return nil, ErrPriceChanged
		}
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	if !sum.Equal(in.Total) {
		return nil, ErrTotalMismatch
	}

	verifiedPaymentID, err := s.payments.Verified(ctx, in.PaymentOrderID)
	if err != nil {
		GetMonitor().RecordRedisError()
		return nil, err
	}
	if verifiedPaymentID == "" || verifiedPaymentID != in.PaymentID {
		return nil, ErrPaymentNotVerified
	}

	o := &order.Order{
		UserID:         in.UserID,
		Total:          in.Total,
		PaymentOrderID: in.PaymentOrderID,
		PaymentID:      in.PaymentID,
		IdempotencyKey: in.IdempotencyKey,
	}
	items := make([]*order.Item, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, &order.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.repo.PlaceOrder(ctx, o, items); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.resolveDuplicate(ctx, in)
		}
		GetMonitor().RecordDBError()
		return nil, err
	}
	GetMonitor().RecordOrderPlaced()

	if s.events != nil {
		evt := &events.OrderPlaced{
			OrderID: o.ID,
			UserID:  o.UserID,
			Total:   o.Total.StringFixed(2),
		}
		if err := s.events.PublishOrderPlaced(ctx, evt); err != nil {
			// 事件只做尽力投递，不影响已提交的订单
			GetMonitor().RecordMQError()
			zap.L().Warn("publish order placed event failed",
				zap.Int64("order_id", o.ID),
				zap.Error(err))
		}
	}
	return o, nil
}

// resolveDuplicate 区分唯一索引冲突的来源：
//   - 本用户已有同幂等键订单且支付引用一致：真正的重复提交，返回首单；
//   - 同幂等键但支付引用不同：客户端把旧键用在了新支付上，拒绝；
//   - 本用户查不到该键：冲突来自支付单号，该笔支付已结算过其它订单。
func (s *OrderService) resolveDuplicate(ctx context.Context, in *PlaceOrderInput) (*order.Order, error) {
	prev, err := s.repo.GetByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentAlreadyUsed
		}
		GetMonitor().RecordDBError()
		return nil, err
	}
	if prev.UserID != in.UserID {
		return nil, ErrPaymentAlreadyUsed
	}
	if prev.PaymentOrderID != in.PaymentOrderID || prev.PaymentID != in.PaymentID {
		return nil, ErrIdemKeyReused
	}
	return prev, nil
}

// ListByUser 查询用户订单，新单在前
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetDetail 查询订单详情：订单头 + 带商品信息的订单行
func (s *OrderService) GetDetail(ctx context.Context, orderID int64) (*order.Order, []*order.ItemDetail, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		GetMonitor().RecordDBError()
		return nil, nil, err
	}
	items, err := s.repo.ListItemDetails(ctx, orderID)
	if err != nil {
		GetMonitor().RecordDBError()
		return nil, nil, err
	}
	return o, items, nil
}

// ListRecent 查询最新订单，后台用
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.repo.ListRecent(ctx, limit)
}
