package dao

import (
	"Moments/models"

	"gorm.io/gorm"
)

// AutoMigrate 建表或补齐字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// DropAll 删除全部业务表
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(models.All()...)
}
