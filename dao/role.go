package dao

import (
	"Moments/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleDAO struct {
	Repo[models.Role]
}

func NewRoleDAO(db *gorm.DB) *RoleDAO {
	return &RoleDAO{Repo: NewRepo[models.Role](db)}
}

func (d *RoleDAO) FindByName(ctx context.Context, name string) (*models.Role, error) {
	return d.FindByWhere(ctx, "name = ?", name)
}

// Sync 把角色权限重置为 mapping 描述的状态, 缺失的角色和权限会被创建.
// 多余的权限关联会被移除, 整个过程在一个事务内完成.
func (d *RoleDAO) Sync(ctx context.Context, roles []string, mapping map[string][]string) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range roles {
			role := models.Role{Name: name}
			if err := ensureByName(tx, &role, name); err != nil {
				return err
			}

			permIDs := make([]uint64, 0, len(mapping[name]))
			for _, permName := range mapping[name] {
				perm := models.Permission{Name: permName}
				if err := ensureByName(tx, &perm, permName); err != nil {
					return err
				}
				permIDs = append(permIDs, perm.ID)
			}

			del := tx.Where("role_id = ?", role.ID)
			if len(permIDs) > 0 {
				del = del.Where("permission_id NOT IN ?", permIDs)
			}
			if err := del.Delete(&models.RolePermission{}).Error; err != nil {
				return err
			}
			for _, pid := range permIDs {
				rp := models.RolePermission{RoleID: role.ID, PermissionID: pid}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ensureByName 按唯一名称插入, 已存在时读取已有记录
func ensureByName[T any](tx *gorm.DB, row *T, name string) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return err
	}
	var found T
	if err := tx.Where("name = ?", name).First(&found).Error; err != nil {
		return err
	}
	*row = found
	return nil
}

// PermissionNames 角色拥有的权限名
func (d *RoleDAO) PermissionNames(ctx context.Context, roleID uint64) ([]string, error) {
	names := make([]string, 0)
	err := d.Db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN roles_permissions rp ON rp.permission_id = permission.id").
		Where("rp.role_id = ?", roleID).
		Order("permission.id").
		Pluck("permission.name", &names).Error
	return names, err
}

func (d *RoleDAO) All(ctx context.Context) ([]*models.Role, error) {
	roles := make([]*models.Role, 0)
	err := d.Db.WithContext(ctx).Order("id").Find(&roles).Error
	return roles, err
}
