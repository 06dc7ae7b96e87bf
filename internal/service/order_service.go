package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cimyrichardson/art-store/internal/datamodels/order"
	"github.com/cimyrichardson/art-store/internal/datamodels/payment"
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/errs"
	"github.com/cimyrichardson/art-store/internal/infra/mq"
)

// ItemInput 下单请求里的一行
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// OrderService 下单事务、状态流转、支付结算与订单查询。
type OrderService struct {
	db          *gorm.DB
	orderRepo   order.Repository
	paymentRepo payment.Repository
	mqConn      *amqp.Connection
}

// NewOrderService 创建订单服务；mqConn 允许为 nil（测试或纯同步场景）。
func NewOrderService(db *gorm.DB, orderRepo order.Repository, paymentRepo payment.Repository, mqConn *amqp.Connection) *OrderService {
	return &OrderService{db: db, orderRepo: orderRepo, paymentRepo: paymentRepo, mqConn: mqConn}
}

// PlaceOrder 下单：锁定商品行校验库存、按锁定读取到的价格累计总额，
// 订单/订单行/支付记录和库存扣减在同一事务内完成，任何一步失败全部回滚。
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, items []ItemInput, paymentMethod, shippingAddress string) (*order.Detail, error) {
	GetMonitor().RecordOrderRequest()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: 购物车不能为空", errs.ErrValidation)
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: 商品数量必须为正整数", errs.ErrValidation)
		}
	}
	if !payment.ValidGateway(paymentMethod) {
		return nil, fmt.Errorf("%w: 不支持的支付方式", errs.ErrValidation)
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("%w: 收货地址不能为空", errs.ErrValidation)
	}

	// 同一商品出现在多行时合并数量，库存校验必须针对合并后的总量，
	// 否则每行各自对未扣减的库存做校验会把库存扣成负数
	merged := make([]ItemInput, 0, len(items))
	seen := make(map[int64]int)
	for _, it := range items {
		if i, ok := seen[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		seen[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	items = merged

	var detail *order.Detail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			total   int64
			details []order.ItemDetail
		)

		// 1) 锁定商品行，校验库存并按锁定价累计总额
		for _, it := range items {
			var p product.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: 商品 %d", errs.ErrNotFound, it.ProductID)
				}
				return err
			}
			if p.Stock < it.Quantity {
				return fmt.Errorf("%w: 商品 %d 仅剩 %d 件", errs.ErrInsufficientStock, p.ID, p.Stock)
			}
			total += p.Price * it.Quantity
			details = append(details, order.ItemDetail{
				ProductID:       p.ID,
				Name:            p.Name,
				ImageURL:        p.ImageURL,
				Quantity:        it.Quantity,
				PriceAtPurchase: p.Price,
			})
		}

		// 2) 创建订单
		o := order.Order{
			UserID:          userID,
			TotalAmount:     total,
			PaymentMethod:   paymentMethod,
			ShippingAddress: shippingAddress,
			Status:          order.StatusPending,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		// 3) 写订单行（价格快照来自上面的锁定读取）
		rows := make([]order.Item, 0, len(items))
		for i, it := range items {
			rows = append(rows, order.Item{
				OrderID:         o.ID,
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				PriceAtPurchase: details[i].PriceAtPurchase,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		// 4) 扣减库存
		for _, it := range items {
			if err := tx.Model(&product.Product{}).
				Where("id = ?", it.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity)).Error; err != nil {
				return err
			}
		}

		// 5) 创建待支付记录
		pay := payment.Payment{
			OrderID: o.ID,
			Amount:  total,
			Gateway: paymentMethod,
			Status:  payment.StatusPending,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		o.Items = rows
		detail = &order.Detail{Order: o, ItemDetails: details}
		return nil
	})
	if err != nil {
		GetMonitor().RecordOrderError()
		return nil, err
	}

	GetMonitor().RecordOrderSuccess()

	// 事务已提交，投递结算消息；投递失败只记日志，订单本身有效
	if s.mqConn != nil {
		if err := mq.PublishPayment(ctx, s.mqConn, detail.ID); err != nil {
			GetMonitor().RecordMQError()
			zap.L().Error("publish payment message failed",
				zap.Int64("order_id", detail.ID), zap.Error(err))
		}
	}
	return detail, nil
}

// UpdateStatus 订单状态流转（管理端）。转 cancelled 时在同一事务内
// 把每行的数量加回对应商品库存。
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, newStatus string) error {
	if !order.ValidStatus(newStatus) {
		return fmt.Errorf("%w: 未知状态 %q", errs.ErrInvalidStatus, newStatus)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o order.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if !order.CanTransition(o.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidStatus, o.Status, newStatus)
		}

		if err := tx.Model(&order.Order{}).
			Where("id = ?", o.ID).
			Update("status", newStatus).Error; err != nil {
			return err
		}

		if newStatus == order.StatusCancelled {
			var rows []order.Item
			if err := tx.Where("order_id = ?", o.ID).Find(&rows).Error; err != nil {
				return err
			}
			for _, it := range rows {
				if err := tx.Model(&product.Product{}).
					Where("id = ?", it.ProductID).
					Update("stock_quantity", gorm.Expr("stock_quantity + ?", it.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SettlePayment 模拟支付网关回调：pending 的支付记录置为 completed，
// 订单从 pending 推进到 processing。非 pending 时直接返回（幂等，
// worker 消息重复投递也不会重复结算）。
func (s *OrderService) SettlePayment(ctx context.Context, orderID int64, userID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o order.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if userID > 0 && o.UserID != userID {
			return errs.ErrNotFound
		}

		var pay payment.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", o.ID).
			First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if pay.Status != payment.StatusPending {
			return nil
		}

		if err := tx.Model(&payment.Payment{}).
			Where("id = ?", pay.ID).
			Update("status", payment.StatusCompleted).Error; err != nil {
			return err
		}
		if o.Status == order.StatusPending {
			if err := tx.Model(&order.Order{}).
				Where("id = ?", o.ID).
				Update("status", order.StatusProcessing).Error; err != nil {
				return err
			}
		}
		GetMonitor().RecordPaymentSettled()
		return nil
	})
}

// GetDetail 订单详情（含支付记录），userID > 0 时只允许本人查看。
func (s *OrderService) GetDetail(ctx context.Context, orderID, userID int64) (*order.Detail, error) {
	detail, err := s.orderRepo.GetDetail(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if s.paymentRepo != nil {
		pay, err := s.paymentRepo.GetByOrderID(ctx, detail.ID)
		switch {
		case err == nil:
			detail.Payment = pay
		case !errors.Is(err, errs.ErrNotFound):
			return nil, err
		}
	}
	return detail, nil
}

// ListByUser 查询用户自己的订单
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]*order.Summary, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListAll 管理端全量订单
func (s *OrderService) ListAll(ctx context.Context) ([]*order.Summary, error) {
	return s.orderRepo.ListAll(ctx)
}
