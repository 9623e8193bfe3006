package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/payment"
)

// VerificationStore 验签通过标记的读写接口
type VerificationStore interface {
	Mark(ctx context.Context, intentID, paymentID string) error
	Verified(ctx context.Context, intentID string) (string, error)
}

// PaymentService 负责创建支付单和验签
type PaymentService struct {
	gateway payment.Gateway
	store   VerificationStore
	secret  string
}

// NewPaymentService 创建支付服务
func NewPaymentService(gateway payment.Gateway, store VerificationStore, cfg *config.RazorpayConfig) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		store:   store,
		secret:  cfg.KeySecret,
	}
}

// CreateIntent 调网关创建支付单，本系统不产生任何本地写入
func (s *PaymentService) CreateIntent(ctx context.Context, total decimal.Decimal) (*payment.Intent, error) {
	if total.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	intent, err := s.gateway.CreateIntent(ctx, total)
	if err != nil {
		GetMonitor().RecordGatewayError()
		return nil, err
	}
	GetMonitor().RecordPaymentIntent()
	return intent, nil
}

// VerifyPayment 校验支付回调签名。通过后写入验签标记，
// 后续下单必须命中该标记才允许落库。
// 返回 false 表示签名不匹配（或字段缺失），不是服务端错误。
func (s *PaymentService) VerifyPayment(ctx context.Context, intentID, paymentID, signature string) (bool, error) {
	if intentID == "" || paymentID == "" || signature == "" {
		return false, nil
	}
	if !payment.VerifySignature(intentID, paymentID, signature, s.secret) {
		GetMonitor().RecordSignatureMismatch()
		return false, nil
	}
	if err := s.store.Mark(ctx, intentID, paymentID); err != nil {
		GetMonitor().RecordRedisError()
		return false, err
	}
	GetMonitor().RecordPaymentVerified()
	return true, nil
}
