package models

// 权限名称
const (
	PermFollow   = "FOLLOW"
	PermCollect  = "COLLECT"
	PermComment  = "COMMENT"
	PermUpload   = "UPLOAD"
	PermModerate = "MODERATE"
	PermAdmin    = "ADMIN"
)

// 角色名称
const (
	RoleLocked        = "Locked"
	RoleUser          = "User"
	RoleModerator     = "Moderator"
	RoleAdministrator = "Administrator"
)

// RoleNames 按权限从小到大排列
var RoleNames = []string{RoleLocked, RoleUser, RoleModerator, RoleAdministrator}

// RolePermissions 每个角色拥有的权限, InitRole 会把数据库重置为这里的映射
var RolePermissions = map[string][]string{
	RoleLocked:        {PermFollow, PermCollect},
	RoleUser:          {PermFollow, PermCollect, PermComment, PermUpload},
	RoleModerator:     {PermFollow, PermCollect, PermComment, PermUpload, PermModerate},
	RoleAdministrator: {PermFollow, PermCollect, PermComment, PermUpload, PermModerate, PermAdmin},
}

type Permission struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(30);not null;uniqueIndex:uk_permission_name" json:"name"`
}

func (Permission) TableName() string {
	return "permission"
}

type Role struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(30);not null;uniqueIndex:uk_role_name" json:"name"`
}

func (Role) TableName() string {
	return "role"
}

// RolePermission 角色与权限的中间表
type RolePermission struct {
	RoleID       uint64 `gorm:"column:role_id;primaryKey;autoIncrement:false" json:"role_id"`
	PermissionID uint64 `gorm:"column:permission_id;primaryKey;autoIncrement:false" json:"permission_id"`
}

func (RolePermission) TableName() string {
	return "roles_permissions"
}
