package db

import (
	"fmt"

	"github.com/Yash24242424/cloneverse-express/internal/config"
	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/infra/slot"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProd() {
		level = gormlogger.Error
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return gdb, nil
}

// 使うテーブルだけ作る
func Migrate(gdb *gorm.DB, cfg config.Config) error {
	var models []interface{}
	if cfg.CartStore == config.StorePostgres {
		models = append(models, &slot.CartSlotRecord{})
	}
	if cfg.DataStore == config.StorePostgres {
		models = append(models, &model.Product{}, &model.User{}, &model.Order{})
	}
	if len(models) == 0 {
		return nil
	}
	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
