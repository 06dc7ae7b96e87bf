package mysql

import (
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/category"
	"github.com/cimyrichardson/art-store/internal/datamodels/order"
	"github.com/cimyrichardson/art-store/internal/datamodels/payment"
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构，连接池上限 10。
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		// TranslateError 把驱动的唯一键冲突统一成 gorm.ErrDuplicatedKey
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{TranslateError: true})
		if err != nil {
			zap.L().Fatal("failed to connect mysql", zap.Error(err))
		}

		sqlDB, err := db.DB()
		if err != nil {
			zap.L().Fatal("failed to get sql.DB", zap.Error(err))
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)

		if err = Migrate(db); err != nil {
			zap.L().Fatal("auto migrate failed", zap.Error(err))
		}
	})
	return db
}

// Migrate 迁移所有表结构，测试里也会对内存库调用。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&product.Product{},
		&order.Order{},
		&order.Item{},
		&payment.Payment{},
	)
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
