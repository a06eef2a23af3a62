package database

import (
	"Moments/config"
	"Moments/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case "mysql":
		dialector = mysql.Open(conf.Database.Dsn())
	default:
		dialector = sqlite.Open(conf.Database.Dsn())
	}

	// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey
	gormConfig := &gorm.Config{TranslateError: true}
	if !conf.Debug() {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.String("driver", conf.Database.Driver), zap.Error(err))
	}
	log.L.Info("connect database success", zap.String("driver", conf.Database.Driver))
	return db
}

// NewSQLite 打开 sqlite 数据库, 测试中使用内存库
func NewSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// 内存库每个连接都是独立的数据库
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// IsMySQL 判断当前方言
func IsMySQL(db *gorm.DB) bool {
	return db.Dialector.Name() == "mysql"
}
