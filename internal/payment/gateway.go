package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
)

// Intent 网关侧创建的支付单，本地不落库，归网关管理
type Intent struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
}

// Gateway 支付网关接口
type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (*Intent, error)
}

type razorpayGateway struct {
	client   *razorpay.Client
	currency string
	timeout  time.Duration
}

// NewRazorpayGateway 创建 Razorpay 网关客户端
func NewRazorpayGateway(cfg *config.RazorpayConfig, payCfg *config.PaymentConfig) Gateway {
	timeout := time.Duration(payCfg.GatewayTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &razorpayGateway{
		client:   razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		currency: payCfg.Currency,
		timeout:  timeout,
	}
}

// CreateIntent 调网关创建支付单。网关按最小货币单位计价（INR 为 paise），
// 这里转换后提交；receipt 只用于网关侧对账，不承担幂等职责。
// SDK 不接受 context，用超时 + select 包一层，慢网关不会拖死请求。
func (g *razorpayGateway) CreateIntent(ctx context.Context, amount decimal.Decimal) (*Intent, error) {
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	data := map[string]interface{}{
		"amount":   minor,
		"currency": g.currency,
		"receipt":  "rcpt_" + uuid.NewString(),
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		body, err := g.client.Order.Create(data, nil)
		ch <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("payment gateway: %w", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("payment gateway: %w", res.err)
		}
		id, _ := res.body["id"].(string)
		if id == "" {
			return nil, errors.New("payment gateway: response missing order id")
		}
		return &Intent{ID: id, Amount: amount, Currency: g.currency}, nil
	}
}
