package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/errs"
)

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List 按条件查询一页商品，total 是同样过滤条件下的总数。
func (r *productRepo) List(ctx context.Context, q *product.ListQuery) ([]*product.Product, int64, error) {
	offset := q.Offset()

	filtered := func(tx *gorm.DB) *gorm.DB {
		if q.CategoryID > 0 {
			tx = tx.Where("category_id = ?", q.CategoryID)
		}
		if q.Search != "" {
			kw := "%" + q.Search + "%"
			tx = tx.Where("name LIKE ? OR description LIKE ?", kw, kw)
		}
		return tx
	}

	var total int64
	if err := filtered(r.db.WithContext(ctx).Model(&product.Product{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filtered(r.db.WithContext(ctx).Model(&product.Product{}))
	switch q.Sort {
	case product.SortPriceAsc:
		query = query.Order("price ASC")
	case product.SortPriceDesc:
		query = query.Order("price DESC")
	case product.SortPopular:
		query = query.Order("is_featured DESC").Order("created_at DESC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	var list []*product.Product
	if err := query.Offset(offset).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&product.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
