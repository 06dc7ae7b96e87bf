package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cimyrichardson/art-store/internal/datamodels/order"
	"github.com/cimyrichardson/art-store/internal/errs"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetDetail 查询订单详情，userID > 0 时校验归属（非本人按不存在处理）。
func (r *orderRepo) GetDetail(ctx context.Context, id int64, userID int64) (*order.Detail, error) {
	query := r.db.WithContext(ctx)
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var o order.Order
	if err := query.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	var items []order.ItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, products.name, products.image_url, order_items.quantity, order_items.price_at_purchase").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", o.ID).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return &order.Detail{Order: o, ItemDetails: items}, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]*order.Summary, error) {
	var list []*order.Summary
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.total_amount, orders.status, orders.created_at, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll 管理端全量订单，带下单人信息。
func (r *orderRepo) ListAll(ctx context.Context) ([]*order.Summary, error) {
	var list []*order.Summary
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.total_amount, orders.status, orders.created_at, users.username, users.email, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN users ON users.id = orders.user_id").
		Group("orders.id, users.username, users.email").
		Order("orders.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
