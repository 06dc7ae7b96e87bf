package order

import (
	"context"
	"time"

	"github.com/cimyrichardson/art-store/internal/datamodels/payment"
)

// 订单状态机：pending → processing → shipped → delivered，
// 任何状态都可转 cancelled；cancelled 为终态。
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// CanTransition 判断状态流转是否合法。
func CanTransition(from, to string) bool {
	switch to {
	case StatusProcessing:
		return from == StatusPending
	case StatusShipped:
		return from == StatusProcessing
	case StatusDelivered:
		return from == StatusShipped
	case StatusCancelled:
		// 已取消的订单不能再取消，否则库存会被重复加回
		return ValidStatus(from) && from != StatusCancelled
	default:
		return false
	}
}

// ValidStatus 判断是否为已知状态值。
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order 订单模型，TotalAmount 在创建后不再变化。
type Order struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"index;not null" json:"user_id"`
	TotalAmount     int64     `gorm:"not null" json:"total_amount"` // 分
	PaymentMethod   string    `gorm:"size:32;not null" json:"payment_method"`
	ShippingAddress string    `gorm:"size:255;not null" json:"shipping_address"`
	Status          string    `gorm:"size:16;index;not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Items []Item `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// Item 订单行，PriceAtPurchase 为下单时锁定读取到的单价快照，
// 之后商品调价不影响历史订单。
type Item struct {
	ID              int64 `gorm:"primaryKey" json:"id"`
	OrderID         int64 `gorm:"index;not null" json:"order_id"`
	ProductID       int64 `gorm:"index;not null" json:"product_id"`
	Quantity        int64 `gorm:"not null" json:"quantity"`
	PriceAtPurchase int64 `gorm:"not null" json:"price_at_purchase"` // 分
}

// TableName 行表固定叫 order_items，和历史库结构保持一致。
func (Item) TableName() string { return "order_items" }

// ItemDetail 订单行 + 商品信息（列表/详情接口用）
type ItemDetail struct {
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	ImageURL        string `json:"image_url"`
	Quantity        int64  `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
}

// Summary 订单列表行（带行数统计）
type Summary struct {
	ID          int64     `json:"id"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int64     `json:"item_count"`
	// 管理端列表附带下单人信息
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Detail 订单详情（含商品信息的行和支付记录）
type Detail struct {
	Order
	ItemDetails []ItemDetail     `json:"items"`
	Payment     *payment.Payment `json:"payment,omitempty"`
}

// Repository 订单仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetDetail(ctx context.Context, id int64, userID int64) (*Detail, error) // userID=0 时不限制归属
	ListByUser(ctx context.Context, userID int64) ([]*Summary, error)
	ListAll(ctx context.Context) ([]*Summary, error)
}
