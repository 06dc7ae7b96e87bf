package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cimyrichardson/art-store/internal/datamodels/category"
	"github.com/cimyrichardson/art-store/internal/errs"
)

// CategoryService 分类查询与维护。
type CategoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListAll(ctx context.Context) ([]*category.Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: 分类名称不能为空", errs.ErrValidation)
	}
	c := &category.Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
