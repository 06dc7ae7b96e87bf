package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/errs"
)

// PageMeta 列表接口的分页信息
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ProductService 商品目录查询与后台 CRUD。
type ProductService struct {
	repo product.Repository
}

func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// List 查询一页商品并计算分页信息。
func (s *ProductService) List(ctx context.Context, q *product.ListQuery) ([]*product.Product, *PageMeta, error) {
	list, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	// Offset 已在仓储中归一化过 Page/Limit
	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	return list, &PageMeta{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: pages,
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func validateProduct(p *product.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: 商品名称不能为空", errs.ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: 价格必须大于 0", errs.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: 库存不能为负数", errs.ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

// Update 整体更新商品字段，商品不存在返回 ErrNotFound。
func (s *ProductService) Update(ctx context.Context, p *product.Product) (*product.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.CategoryID = p.CategoryID
	existing.Stock = p.Stock
	existing.ImageURL = p.ImageURL
	existing.IsFeatured = p.IsFeatured
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
