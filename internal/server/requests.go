package server

import (
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CategoryID  *int64 `json:"category_id"`
	Stock       int64  `json:"stock_quantity"`
	ImageURL    string `json:"image_url"`
	IsFeatured  bool   `json:"is_featured"`
}

// toModel 组装商品模型，id 为 0 表示新建。
func (r *productRequest) toModel(id int64) *product.Product {
	return &product.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		IsFeatured:  r.IsFeatured,
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type placeOrderRequest struct {
	Items           []service.ItemInput `json:"items"`
	PaymentMethod   string              `json:"payment_method"`
	ShippingAddress string              `json:"shipping_address"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}
