package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cimyrichardson/art-store/internal/datamodels/order"
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/errs"
)

// testDB 内存库，连接数限 1，避免 :memory: 在池里裂成多个库。
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedOrders 两个用户、两件商品，u1 两单（一单两行）、u2 一单。
func seedOrders(t *testing.T, db *gorm.DB) (u1, u2 int64, o1, o2, o3 int64) {
	t.Helper()

	users := []user.User{
		{Username: "marie_d", Email: "marie@example.com", Password: "x", Role: user.RoleCustomer},
		{Username: "jean_p", Email: "jean@example.com", Password: "x", Role: user.RoleCustomer},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}

	products := []product.Product{
		{Name: "晨雾", Price: 120000, Stock: 5, ImageURL: "/assets/img/shop/1.jpg"},
		{Name: "山影", Price: 45000, Stock: 5, ImageURL: "/assets/img/shop/2.jpg"},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("seed products: %v", err)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []order.Order{
		{UserID: users[0].ID, TotalAmount: 285000, PaymentMethod: "paypal", ShippingAddress: "地址一", Status: order.StatusPending, CreatedAt: base},
		{UserID: users[0].ID, TotalAmount: 45000, PaymentMethod: "wise", ShippingAddress: "地址一", Status: order.StatusDelivered, CreatedAt: base.Add(time.Hour)},
		{UserID: users[1].ID, TotalAmount: 120000, PaymentMethod: "moncash", ShippingAddress: "地址二", Status: order.StatusPending, CreatedAt: base.Add(2 * time.Hour)},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("seed orders: %v", err)
	}

	items := []order.Item{
		{OrderID: orders[0].ID, ProductID: products[0].ID, Quantity: 2, PriceAtPurchase: 120000},
		{OrderID: orders[0].ID, ProductID: products[1].ID, Quantity: 1, PriceAtPurchase: 45000},
		{OrderID: orders[1].ID, ProductID: products[1].ID, Quantity: 1, PriceAtPurchase: 45000},
		{OrderID: orders[2].ID, ProductID: products[0].ID, Quantity: 1, PriceAtPurchase: 120000},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}
	return users[0].ID, users[1].ID, orders[0].ID, orders[1].ID, orders[2].ID
}

func TestOrderGetDetail(t *testing.T) {
	db := testDB(t)
	u1, u2, o1, _, _ := seedOrders(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	d, err := repo.GetDetail(ctx, o1, u1)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if d.TotalAmount != 285000 || len(d.ItemDetails) != 2 {
		t.Errorf("detail = total %d items %d", d.TotalAmount, len(d.ItemDetails))
	}
	// 行里带商品名和价格快照
	for _, it := range d.ItemDetails {
		if it.Name == "" || it.PriceAtPurchase == 0 {
			t.Errorf("item detail missing product info: %+v", it)
		}
	}

	// 非本人订单按不存在处理
	if _, err := repo.GetDetail(ctx, o1, u2); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("other user's order: err = %v, want ErrNotFound", err)
	}
	// userID=0 为管理端视角，不限制归属
	if _, err := repo.GetDetail(ctx, o1, 0); err != nil {
		t.Errorf("admin view: %v", err)
	}
	if _, err := repo.GetDetail(ctx, 9999, 0); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing order: err = %v, want ErrNotFound", err)
	}
}

func TestOrderListByUser(t *testing.T) {
	db := testDB(t)
	u1, _, o1, o2, _ := seedOrders(t, db)
	repo := NewOrderRepository(db)

	list, err := repo.ListByUser(context.Background(), u1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	// created_at 倒序：后下的单在前
	if list[0].ID != o2 || list[1].ID != o1 {
		t.Errorf("order ids = %d,%d, want %d,%d", list[0].ID, list[1].ID, o2, o1)
	}
	if list[0].ItemCount != 1 || list[1].ItemCount != 2 {
		t.Errorf("item counts = %d,%d, want 1,2", list[0].ItemCount, list[1].ItemCount)
	}
}

func TestOrderListAll(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	repo := NewOrderRepository(db)

	list, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for _, s := range list {
		if s.Username == "" || s.Email == "" {
			t.Errorf("summary missing buyer info: %+v", s)
		}
	}
}

func TestOrderGetByID(t *testing.T) {
	db := testDB(t)
	_, _, o1, _, _ := seedOrders(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o, err := repo.GetByID(ctx, o1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(o.Items) != 2 {
		t.Errorf("preloaded items = %d, want 2", len(o.Items))
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing order err = %v, want ErrNotFound", err)
	}
}
