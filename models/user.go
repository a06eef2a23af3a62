package models

import "time"

type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(20);not null;uniqueIndex:uk_user_username" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uk_user_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Name         string    `gorm:"column:name;type:varchar(30);not null;default:''" json:"name"`
	Website      string    `gorm:"column:website;type:varchar(255);not null;default:''" json:"website"`
	Bio          string    `gorm:"column:bio;type:varchar(120);not null;default:''" json:"bio"`
	Location     string    `gorm:"column:location;type:varchar(50);not null;default:''" json:"location"`
	MemberSince  time.Time `gorm:"column:member_since;not null" json:"member_since"`

	AvatarS   string `gorm:"column:avatar_s;type:varchar(64);not null;default:''" json:"avatar_s"`
	AvatarM   string `gorm:"column:avatar_m;type:varchar(64);not null;default:''" json:"avatar_m"`
	AvatarL   string `gorm:"column:avatar_l;type:varchar(64);not null;default:''" json:"avatar_l"`
	AvatarRaw string `gorm:"column:avatar_raw;type:varchar(64);not null;default:''" json:"avatar_raw"`

	// 布尔字段不设数据库默认值, 由 NewUser 显式赋值, 避免 gorm 忽略 false
	Confirmed bool `gorm:"column:confirmed;not null" json:"confirmed"`
	Locked    bool `gorm:"column:locked;not null" json:"locked"`
	Active    bool `gorm:"column:active;not null" json:"active"`

	PublicCollections          bool `gorm:"column:public_collections;not null" json:"public_collections"`
	ReceiveCommentNotification bool `gorm:"column:receive_comment_notification;not null" json:"receive_comment_notification"`
	ReceiveFollowNotification  bool `gorm:"column:receive_follow_notification;not null" json:"receive_follow_notification"`
	ReceiveCollectNotification bool `gorm:"column:receive_collect_notification;not null" json:"receive_collect_notification"`

	RoleID uint64 `gorm:"column:role_id;not null;index:idx_user_role" json:"role_id"`
	// 仅查询时填充
	Role *Role `gorm:"-" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// NewUser 新注册用户的默认状态
func NewUser(name, username, email string) *User {
	return &User{
		Name:                       name,
		Username:                   username,
		Email:                      email,
		MemberSince:                time.Now(),
		Active:                     true,
		PublicCollections:          true,
		ReceiveCommentNotification: true,
		ReceiveFollowNotification:  true,
		ReceiveCollectNotification: true,
	}
}

// AvatarKey 头像文件在存储中的 key
func AvatarKey(name string) string {
	return "avatars/" + name
}
