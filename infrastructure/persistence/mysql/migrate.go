package mysql

import (
	"ordersvc/infrastructure/persistence/mysql/po"
	"ordersvc/pkg/logger"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the order tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&po.OrderPO{}, &po.OrderItemPO{}); err != nil {
		return err
	}
	logger.Info("Database schema migrated")
	return nil
}
