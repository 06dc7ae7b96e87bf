package product

import (
	"context"
	"time"
)

// 列表排序方式，对应前台下拉框
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortPopular   = "popular" // 推荐优先，其次按上架时间
)

// Product 商品模型
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	Price       int64     `gorm:"not null" json:"price"` // 分
	CategoryID  *int64    `gorm:"index" json:"category_id"`
	Stock       int64     `gorm:"column:stock_quantity;not null" json:"stock_quantity"`
	ImageURL    string    `gorm:"size:255" json:"image_url"`
	IsFeatured  bool      `gorm:"index" json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListQuery 商品列表的筛选/分页条件
type ListQuery struct {
	CategoryID int64  // 0 表示不过滤
	Search     string // 名称/描述模糊匹配
	Sort       string
	Page       int
	Limit      int
}

// Offset 计算分页偏移，Page/Limit 缺省时取 1/10。
func (q *ListQuery) Offset() int {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return (q.Page - 1) * q.Limit
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List 返回符合条件的一页商品和过滤后的总数
	List(ctx context.Context, q *ListQuery) ([]*Product, int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
