package service

import (
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/log"
	"context"
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

var _ IRoleService = (*RoleService)(nil)

type IRoleService interface {
	// InitRole 创建角色和权限, 并把每个角色的权限重置为固定映射
	InitRole(ctx context.Context) error
	Can(ctx context.Context, user *models.User, permission string) bool
	IsAdmin(ctx context.Context, user *models.User) bool
	RoleName(ctx context.Context, roleID uint64) string
	RoleByName(ctx context.Context, name string) (*models.Role, error)
	Roles(ctx context.Context) ([]*models.Role, error)
}

type RoleService struct {
	RoleDAO *dao.RoleDAO

	// role_id -> 权限集合
	perms cmap.ConcurrentMap[string, map[string]bool]
	// role_id -> 角色名
	names cmap.ConcurrentMap[string, string]
}

func NewRoleService(roleDAO *dao.RoleDAO) *RoleService {
	return &RoleService{
		RoleDAO: roleDAO,
		perms:   cmap.New[map[string]bool](),
		names:   cmap.New[string](),
	}
}

func (s *RoleService) InitRole(ctx context.Context) error {
	if err := s.RoleDAO.Sync(ctx, models.RoleNames, models.RolePermissions); err != nil {
		return err
	}
	s.perms.Clear()
	s.names.Clear()
	return nil
}

func (s *RoleService) Can(ctx context.Context, user *models.User, permission string) bool {
	if user == nil {
		return false
	}
	key := strconv.FormatUint(user.RoleID, 10)
	perms, ok := s.perms.Get(key)
	if !ok {
		names, err := s.RoleDAO.PermissionNames(ctx, user.RoleID)
		if err != nil {
			log.L.Error("load role permissions", zap.Uint64("role_id", user.RoleID), zap.Error(err))
			return false
		}
		perms = make(map[string]bool, len(names))
		for _, n := range names {
			perms[n] = true
		}
		s.perms.Set(key, perms)
	}
	return perms[permission]
}

func (s *RoleService) IsAdmin(ctx context.Context, user *models.User) bool {
	return user != nil && s.RoleName(ctx, user.RoleID) == models.RoleAdministrator
}

func (s *RoleService) RoleName(ctx context.Context, roleID uint64) string {
	key := strconv.FormatUint(roleID, 10)
	if name, ok := s.names.Get(key); ok {
		return name
	}
	role, err := s.RoleDAO.FindById(ctx, roleID)
	if err != nil {
		return ""
	}
	s.names.Set(key, role.Name)
	return role.Name
}

func (s *RoleService) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	role, err := s.RoleDAO.FindByName(ctx, name)
	return role, notFound(err)
}

func (s *RoleService) Roles(ctx context.Context) ([]*models.Role, error) {
	return s.RoleDAO.All(ctx)
}
