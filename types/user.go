package types

import "time"

// UserBrief 列表中的用户信息
type UserBrief struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	AvatarS  string `json:"avatar_s"`
	AvatarM  string `json:"avatar_m"`
	AvatarL  string `json:"avatar_l"`
}

// UserProfile 用户主页
type UserProfile struct {
	UserBrief
	Website           string    `json:"website"`
	Bio               string    `json:"bio"`
	Location          string    `json:"location"`
	MemberSince       time.Time `json:"member_since"`
	Role              string    `json:"role"`
	Confirmed         bool      `json:"confirmed"`
	Locked            bool      `json:"locked"`
	Active            bool      `json:"active"`
	PublicCollections bool      `json:"public_collections"`

	PhotoCount      int64 `json:"photo_count"`
	CollectionCount int64 `json:"collection_count"`
	FollowerCount   int64 `json:"follower_count"`
	FollowingCount  int64 `json:"following_count"`

	// 当前登录用户视角
	IsFollowing  bool `json:"is_following"`
	IsFollowedBy bool `json:"is_followed_by"`
}

type EditProfileRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=30"`
	Username string `json:"username" binding:"required,alphanum,min=1,max=20"`
	Website  string `json:"website" binding:"omitempty,url,max=255"`
	Location string `json:"location" binding:"max=50"`
	Bio      string `json:"bio" binding:"max=120"`
}

// AdminEditProfileRequest 管理员编辑用户资料
type AdminEditProfileRequest struct {
	EditProfileRequest
	Email     string `json:"email" binding:"required,email,max=254"`
	Role      string `json:"role" binding:"required"`
	Active    bool   `json:"active"`
	Confirmed bool   `json:"confirmed"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Password2   string `json:"password2" binding:"required,eqfield=Password"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

type NotificationSettingRequest struct {
	ReceiveCommentNotification bool `json:"receive_comment_notification"`
	ReceiveFollowNotification  bool `json:"receive_follow_notification"`
	ReceiveCollectNotification bool `json:"receive_collect_notification"`
}

type PrivacySettingRequest struct {
	PublicCollections bool `json:"public_collections"`
}

type CropAvatarRequest struct {
	X int `json:"x" binding:"min=0"`
	Y int `json:"y" binding:"min=0"`
	W int `json:"w" binding:"required,min=1"`
	H int `json:"h" binding:"required,min=1"`
}

type DeleteAccountRequest struct {
	Username string `json:"username" binding:"required"`
}

type AvatarResponse struct {
	AvatarS   string `json:"avatar_s"`
	AvatarM   string `json:"avatar_m"`
	AvatarL   string `json:"avatar_l"`
	AvatarRaw string `json:"avatar_raw,omitempty"`
}
