package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cimyrichardson/art-store/internal/datamodels/payment"
	"github.com/cimyrichardson/art-store/internal/errs"
)

type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓储
func NewPaymentRepository(db *gorm.DB) payment.Repository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) GetByOrderID(ctx context.Context, orderID int64) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
