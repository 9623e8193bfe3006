package service

import "errors"

// 业务错误，路由层用 errors.Is 映射为 HTTP 状态码
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrMissingIdemKey     = errors.New("idempotency key is required")
	ErrProductNotFound    = errors.New("product not found")
	ErrPriceChanged       = errors.New("item price does not match catalog price")
	ErrTotalMismatch      = errors.New("total amount does not match cart items")
	ErrPaymentNotVerified = errors.New("payment has not been verified")
	ErrPaymentAlreadyUsed = errors.New("payment already settled an existing order")
	ErrIdemKeyReused      = errors.New("idempotency key already used for a different payment")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
)
