package server

import (
	"Moments/dao"
	"Moments/pkg/log"
	"Moments/service"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommandProvider 命令行维护命令用到的依赖
type CommandProvider struct {
	DB    *gorm.DB
	Roles service.IRoleService
	Lorem *service.LoremService
}

// InitDB 建表, drop 为 true 时先删除全部表
func (p *CommandProvider) InitDB(drop bool) error {
	if drop {
		if err := dao.DropAll(p.DB); err != nil {
			return err
		}
		log.L.Info("drop tables")
	}
	if err := dao.AutoMigrate(p.DB); err != nil {
		return err
	}
	log.L.Info("initialized database")
	return nil
}

// InitApp 建表并初始化角色和权限
func (p *CommandProvider) InitApp(ctx context.Context) error {
	if err := p.InitDB(false); err != nil {
		return err
	}
	if err := p.Roles.InitRole(ctx); err != nil {
		return err
	}
	log.L.Info("initialized roles and permissions")
	return nil
}

// GenerateLorem 重建数据库后生成测试数据
func (p *CommandProvider) GenerateLorem(ctx context.Context, opts service.LoremOptions) error {
	if err := p.InitDB(true); err != nil {
		return err
	}
	if err := p.Roles.InitRole(ctx); err != nil {
		return err
	}
	if err := p.Lorem.Generate(ctx, opts); err != nil {
		return err
	}
	log.L.Info("generated fake data", zap.Any("options", opts))
	return nil
}
