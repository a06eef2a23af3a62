package models

// All 需要迁移的全部表
func All() []any {
	return []any{
		&Permission{},
		&Role{},
		&RolePermission{},
		&User{},
		&Follow{},
		&Collection{},
		&Photo{},
		&Tag{},
		&PhotoTag{},
		&Comment{},
		&Notification{},
		&MailOutbox{},
	}
}
