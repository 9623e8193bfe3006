package service

import (
	"sync"
	"time"
)

// Monitor 监控服务，用于统计错误和业务指标
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	GatewayErrors       int64
	DBErrors            int64
	RedisErrors         int64
	MQErrors            int64
	SignatureMismatches int64

	// 业务统计
	PaymentIntents   int64
	PaymentsVerified int64
	OrdersPlaced     int64

	// 时间统计
	LastGatewayError time.Time
	LastDBError      time.Time
	LastOrderTime    time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordGatewayError 记录支付网关错误
func (m *Monitor) RecordGatewayError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatewayErrors++
	m.LastGatewayError = time.Now()
}

// RecordDBError 记录数据库错误
func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
	m.LastDBError = time.Now()
}

// RecordRedisError 记录Redis错误
func (m *Monitor) RecordRedisError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors++
}

// RecordMQError 记录MQ错误
func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
}

// RecordSignatureMismatch 记录验签失败
func (m *Monitor) RecordSignatureMismatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignatureMismatches++
}

// RecordPaymentIntent 记录支付单创建
func (m *Monitor) RecordPaymentIntent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentIntents++
}

// RecordPaymentVerified 记录验签通过
func (m *Monitor) RecordPaymentVerified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsVerified++
}

// RecordOrderPlaced 记录下单成功
func (m *Monitor) RecordOrderPlaced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersPlaced++
	m.LastOrderTime = time.Now()
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	verifyRate := float64(0)
	if m.PaymentIntents > 0 {
		verifyRate = float64(m.PaymentsVerified) / float64(m.PaymentIntents) * 100
	}

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"gateway":            m.GatewayErrors,
			"db":                 m.DBErrors,
			"redis":              m.RedisErrors,
			"mq":                 m.MQErrors,
			"signature_mismatch": m.SignatureMismatches,
		},
		"business": map[string]interface{}{
			"payment_intents":   m.PaymentIntents,
			"payments_verified": m.PaymentsVerified,
			"orders_placed":     m.OrdersPlaced,
			"verify_rate":       verifyRate,
		},
		"last_events": map[string]interface{}{
			"gateway_error": m.LastGatewayError,
			"db_error":      m.LastDBError,
			"last_order":    m.LastOrderTime,
		},
	}
}

// Reset 重置统计（用于测试或定期清理）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatewayErrors = 0
	m.DBErrors = 0
	m.RedisErrors = 0
	m.MQErrors = 0
	m.SignatureMismatches = 0
	m.PaymentIntents = 0
	m.PaymentsVerified = 0
	m.OrdersPlaced = 0
}
