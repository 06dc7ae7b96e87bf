package payment

import (
	"context"
	"time"
)

// 支付状态
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// 支持的支付渠道（模拟网关，不接真实处理器）
var Gateways = []string{"paypal", "wise", "moncash", "natcash"}

// ValidGateway 判断支付方式是否受支持。
func ValidGateway(g string) bool {
	for _, v := range Gateways {
		if v == g {
			return true
		}
	}
	return false
}

// Payment 支付记录，Amount 与订单总额一致。
type Payment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OrderID   int64     `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount    int64     `gorm:"not null" json:"amount"` // 分
	Gateway   string    `gorm:"size:32;not null" json:"gateway"`
	Status    string    `gorm:"size:16;index;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository 支付仓储接口
type Repository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*Payment, error)
}
