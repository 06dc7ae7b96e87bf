package service

import (
	"sync"
	"time"
)

// Monitor 进程内计数器，后台 metrics 接口直接读取。
type Monitor struct {
	mu sync.RWMutex

	OrderRequests  int64
	OrderSuccess   int64
	OrderErrors    int64
	PaymentSettled int64
	AuthFailures   int64
	MQErrors       int64

	LastOrderTime   time.Time
	LastOrderError  time.Time
	LastMQError     time.Time
	LastAuthFailure time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordOrderRequest 记录一次下单请求
func (m *Monitor) RecordOrderRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderRequests++
	m.LastOrderTime = time.Now()
}

// RecordOrderSuccess 记录下单成功
func (m *Monitor) RecordOrderSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderSuccess++
}

// RecordOrderError 记录下单失败
func (m *Monitor) RecordOrderError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderErrors++
	m.LastOrderError = time.Now()
}

// RecordPaymentSettled 记录支付结算
func (m *Monitor) RecordPaymentSettled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentSettled++
}

// RecordAuthFailure 记录鉴权失败
func (m *Monitor) RecordAuthFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthFailures++
	m.LastAuthFailure = time.Now()
}

// RecordMQError 记录 MQ 投递失败
func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
	m.LastMQError = time.Now()
}

// Snapshot 返回当前计数的拷贝
func (m *Monitor) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"order_requests":  m.OrderRequests,
		"order_success":   m.OrderSuccess,
		"order_errors":    m.OrderErrors,
		"payment_settled": m.PaymentSettled,
		"auth_failures":   m.AuthFailures,
		"mq_errors":       m.MQErrors,
	}
}
