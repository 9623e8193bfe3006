package mysql

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/cart"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/order"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/user"
)

// newTestDB 每个测试一个独立的内存库，表结构与生产迁移一致。
// sqlite 驱动同样实现了 ErrorTranslator，唯一键冲突会转成 gorm.ErrDuplicatedKey。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&product.Product{},
		&cart.Item{},
		&order.Order{},
		&order.Item{},
	))
	return db
}
