package server

import (
	"errors"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/auth"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/events"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/infra/mq"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/infra/redis"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/middleware"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/payment"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/repository/mysql"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/service"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/verify"
)

// RegisterRoutes 注册所有前台 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	verifyStore := verify.NewStore(redisClient, time.Duration(cfg.Payment.VerifiedTTLSeconds)*time.Second)
	gateway := payment.NewRazorpayGateway(&cfg.Razorpay, &cfg.Payment)
	publisher := events.NewPublisher(mqConn)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartRepo)
	paymentSvc := service.NewPaymentService(gateway, verifyStore, &cfg.Razorpay)
	orderSvc := service.NewOrderService(orderRepo, productRepo, verifyStore, publisher)

	// JWT 解析结果缓存，减少热点用户的重复解析
	ring := auth.NewRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	sessionCache := auth.NewSessionCache(redisClient, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// 用户注册/登录
	api.Post("/register", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			zap.L().Error("register failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"id": u.ID, "username": u.Username})
	})

	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"message": "Invalid credentials"})
			return
		}
		ctx.JSON(iris.Map{"token": token})
	})

	// 需要登录的接口
	authAPI := api.Party("/", func(ctx iris.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"message": "missing token"})
			return
		}
		claims, hit, err := sessionCache.Get(ctx.Request().Context(), token)
		if err != nil {
			service.GetMonitor().RecordRedisError()
			hit = false
		}
		if !hit {
			claims, err = auth.ParseToken(&cfg.JWT, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"message": "invalid token"})
				return
			}
			if err := sessionCache.Set(ctx.Request().Context(), token, claims); err != nil {
				service.GetMonitor().RecordRedisError()
			}
		}
		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("username", claims.Username)
		ctx.Next()
	})

	// ---------------- 商品 ----------------

	authAPI.Get("/products", func(ctx iris.Context) {
		page := ctx.URLParamIntDefault("page", 1)
		list, pagination, err := productSvc.ListPage(ctx.Request().Context(), page)
		if err != nil {
			zap.L().Error("list products failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"products": list, "pagination": pagination})
	})

	authAPI.Get("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				ctx.StopWithJSON(404, iris.Map{"message": "Not Found"})
				return
			}
			zap.L().Error("get product failed", zap.Int64("id", id), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(p)
	})

	// ---------------- 购物车 ----------------

	authAPI.Get("/cart", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := cartSvc.List(ctx.Request().Context(), userID)
		if err != nil {
			zap.L().Error("fetch cart failed", zap.Int64("user_id", userID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Failed to fetch cart"})
			return
		}
		ctx.JSON(list)
	})

	authAPI.Post("/cart", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		item, err := cartSvc.Add(ctx.Request().Context(), userID, req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCartItem) {
				ctx.StopWithJSON(400, iris.Map{"message": err.Error()})
				return
			}
			zap.L().Error("add to cart failed", zap.Int64("user_id", userID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Failed to add item"})
			return
		}
		ctx.JSON(iris.Map{"message": "Added to cart", "cartId": item.ID})
	})

	authAPI.Put("/cart/{cartId:int64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		cartID, _ := ctx.Params().GetInt64("cartId")
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		if err := cartSvc.UpdateQuantity(ctx.Request().Context(), userID, cartID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCartItem):
				ctx.StopWithJSON(400, iris.Map{"message": err.Error()})
			case errors.Is(err, service.ErrCartItemNotFound):
				ctx.StopWithJSON(404, iris.Map{"message": "Item not found"})
			default:
				zap.L().Error("update cart failed", zap.Int64("cart_id", cartID), zap.Error(err))
				ctx.StopWithJSON(500, iris.Map{"message": "Failed to update cart"})
			}
			return
		}
		ctx.JSON(iris.Map{"message": "Cart updated"})
	})

	authAPI.Delete("/cart/{cartId:int64}", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		cartID, _ := ctx.Params().GetInt64("cartId")
		if err := cartSvc.Remove(ctx.Request().Context(), userID, cartID); err != nil {
			if errors.Is(err, service.ErrCartItemNotFound) {
				ctx.StopWithJSON(404, iris.Map{"message": "Item not found"})
				return
			}
			zap.L().Error("remove cart item failed", zap.Int64("cart_id", cartID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Failed to remove item"})
			return
		}
		ctx.JSON(iris.Map{"message": "Item removed"})
	})

	// ---------------- 支付与订单 ----------------

	// 创建支付单：返回的 orderId 是网关侧的支付单号，不是本地订单号
	authAPI.Post("/orders/create-payment-order", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		var req struct {
			TotalAmount decimal.Decimal `json:"totalAmount"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		intent, err := paymentSvc.CreateIntent(ctx.Request().Context(), req.TotalAmount)
		if err != nil {
			if errors.Is(err, service.ErrInvalidAmount) {
				ctx.StopWithJSON(400, iris.Map{"message": err.Error()})
				return
			}
			zap.L().Error("create payment order failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Payment order creation failed"})
			return
		}
		ctx.JSON(iris.Map{
			"orderId":  intent.ID,
			"amount":   intent.Amount,
			"currency": intent.Currency,
		})
	})

	// 校验支付回调签名
	authAPI.Post("/orders/verify-payment", func(ctx iris.Context) {
		var req struct {
			OrderID   string `json:"razorpay_order_id"`
			PaymentID string `json:"razorpay_payment_id"`
			Signature string `json:"razorpay_signature"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		ok, err := paymentSvc.VerifyPayment(ctx.Request().Context(), req.OrderID, req.PaymentID, req.Signature)
		if err != nil {
			zap.L().Error("verify payment failed", zap.String("order_id", req.OrderID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Payment verification error"})
			return
		}
		if !ok {
			ctx.StopWithJSON(400, iris.Map{"success": false})
			return
		}
		ctx.JSON(iris.Map{"success": true})
	})

	// 下单
	authAPI.Post("/orders", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		var req struct {
			CartItems      []service.CartItem `json:"cartItems"`
			TotalAmount    decimal.Decimal    `json:"totalAmount"`
			PaymentOrderID string             `json:"razorpay_order_id"`
			PaymentID      string             `json:"razorpay_payment_id"`
			IdempotencyKey string             `json:"idempotency_key"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		o, err := orderSvc.PlaceOrder(ctx.Request().Context(), &service.PlaceOrderInput{
			UserID:         userID,
			Items:          req.CartItems,
			Total:          req.TotalAmount,
			PaymentOrderID: req.PaymentOrderID,
			PaymentID:      req.PaymentID,
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			if isOrderValidationError(err) {
				ctx.StopWithJSON(400, iris.Map{"message": err.Error()})
				return
			}
			zap.L().Error("place order failed", zap.Int64("user_id", userID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"message": "Order placed", "orderId": o.ID})
	})

	// 订单列表（新单在前）
	authAPI.Get("/orders", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := orderSvc.ListByUser(ctx.Request().Context(), userID)
		if err != nil {
			zap.L().Error("list orders failed", zap.Int64("user_id", userID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(list)
	})

	// 订单详情
	authAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
		orderID, _ := ctx.Params().GetInt64("id")
		o, items, err := orderSvc.GetDetail(ctx.Request().Context(), orderID)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				ctx.StopWithJSON(404, iris.Map{"message": "Order not found"})
				return
			}
			zap.L().Error("order detail failed", zap.Int64("order_id", orderID), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"order": o, "items": items})
	})
}

// isOrderValidationError 是否属于客户端可修正的下单错误（映射为 400）
func isOrderValidationError(err error) bool {
	for _, target := range []error{
		service.ErrEmptyCart,
		service.ErrInvalidCartItem,
		service.ErrMissingIdemKey,
		service.ErrProductNotFound,
		service.ErrPriceChanged,
		service.ErrTotalMismatch,
		service.ErrPaymentNotVerified,
		service.ErrPaymentAlreadyUsed,
		service.ErrIdemKeyReused,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
