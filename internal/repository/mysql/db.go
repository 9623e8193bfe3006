package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/cart"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/order"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构。
// TranslateError 打开后，唯一键冲突会统一转成 gorm.ErrDuplicatedKey，
// 幂等下单依赖这一点。
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = db.AutoMigrate(
			&user.User{},
			&product.Product{},
			&cart.Item{},
			&order.Order{},
			&order.Item{},
		); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
