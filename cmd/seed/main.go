package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cimyrichardson/art-store/internal/auth"
	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/category"
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/errs"
	"github.com/cimyrichardson/art-store/internal/logger"
	"github.com/cimyrichardson/art-store/internal/repository/mysql"
)

// 初始化演示数据：分类、商品和一个 admin 账号。重复执行是安全的。
func main() {
	configPath := flag.String("config", "./config", "配置文件目录")
	flag.Parse()

	logger.Init(false)

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.L().Fatal("load config failed", zap.Error(err))
	}

	db := mysql.Init(&cfg.MySQL)
	ctx := context.Background()

	userRepo := mysql.NewUserRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)

	// admin 账号，密码从环境变量取，缺省用演示密码
	adminEmail := "admin@artstore.local"
	if _, err := userRepo.GetByEmail(ctx, adminEmail); errors.Is(err, errs.ErrNotFound) {
		pw := os.Getenv("ARTSTORE_ADMIN_PASSWORD")
		if pw == "" {
			pw = "Admin12345"
		}
		hashed, err := auth.HashPassword(pw)
		if err != nil {
			zap.L().Fatal("hash admin password failed", zap.Error(err))
		}
		admin := &user.User{
			Username: "admin",
			Email:    adminEmail,
			Password: hashed,
			Role:     user.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			zap.L().Fatal("create admin failed", zap.Error(err))
		}
		zap.L().Info("admin user created", zap.String("email", adminEmail))
	}

	names := []string{"绘画", "雕塑", "摄影", "版画"}
	categoryIDs := make(map[string]int64, len(names))
	existing, err := categoryRepo.ListAll(ctx)
	if err != nil {
		zap.L().Fatal("list categories failed", zap.Error(err))
	}
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}
	for _, name := range names {
		if _, ok := categoryIDs[name]; ok {
			continue
		}
		c := &category.Category{Name: name}
		if err := categoryRepo.Create(ctx, c); err != nil {
			zap.L().Fatal("create category failed", zap.String("name", name), zap.Error(err))
		}
		categoryIDs[name] = c.ID
	}

	type seedProduct struct {
		name     string
		desc     string
		price    int64 // 分
		stock    int64
		cat      string
		featured bool
	}
	seeds := []seedProduct{
		{"晨光油画", "手绘风景油画，画布 60x80cm", 128000, 5, "绘画", true},
		{"城市剪影", "现代都市主题丙烯画", 98000, 8, "绘画", false},
		{"抽象之蓝", "蓝色系抽象油画", 156000, 3, "绘画", true},
		{"青铜小鹿", "失蜡法铸造青铜摆件", 215000, 2, "雕塑", true},
		{"陶土人像", "手工陶土雕塑，高 30cm", 78000, 6, "雕塑", false},
		{"大理石拱门", "天然大理石案头雕塑", 320000, 1, "雕塑", false},
		{"海岸线", "限量签名摄影作品，装裱 50x70cm", 68000, 10, "摄影", true},
		{"山间雾", "黑白风光摄影", 58000, 12, "摄影", false},
		{"街角故事", "纪实街头摄影", 52000, 15, "摄影", false},
		{"星空石版画", "手工石版印刷，限量 50 张", 36000, 20, "版画", false},
		{"木刻四季", "四联幅木刻版画", 88000, 7, "版画", true},
		{"丝网几何", "彩色丝网版画", 42000, 18, "版画", false},
	}

	for i, sp := range seeds {
		cid := categoryIDs[sp.cat]
		p := &product.Product{
			Name:        sp.name,
			Description: sp.desc,
			Price:       sp.price,
			CategoryID:  &cid,
			Stock:       sp.stock,
			ImageURL:    fmt.Sprintf("/assets/img/shop/%d.jpg", i+1),
			IsFeatured:  sp.featured,
		}
		// 已有同名商品就跳过
		list, _, err := productRepo.List(ctx, &product.ListQuery{Search: sp.name, Limit: 1})
		if err != nil {
			zap.L().Fatal("lookup product failed", zap.Error(err))
		}
		if len(list) > 0 {
			continue
		}
		if err := productRepo.Create(ctx, p); err != nil {
			zap.L().Fatal("create product failed", zap.String("name", sp.name), zap.Error(err))
		}
	}

	zap.L().Info("seed finished",
		zap.Int("categories", len(names)), zap.Int("products", len(seeds)))
}
