package config

// Moments 业务配置
type Moments struct {
	AdminEmail string `json:"admin_email" yaml:"admin_email"`

	PhotoPerPage         int `json:"photo_per_page" yaml:"photo_per_page"`
	CommentPerPage       int `json:"comment_per_page" yaml:"comment_per_page"`
	NotificationPerPage  int `json:"notification_per_page" yaml:"notification_per_page"`
	UserPerPage          int `json:"user_per_page" yaml:"user_per_page"`
	ManagePhotoPerPage   int `json:"manage_photo_per_page" yaml:"manage_photo_per_page"`
	ManageUserPerPage    int `json:"manage_user_per_page" yaml:"manage_user_per_page"`
	ManageTagPerPage     int `json:"manage_tag_per_page" yaml:"manage_tag_per_page"`
	ManageCommentPerPage int `json:"manage_comment_per_page" yaml:"manage_comment_per_page"`
	SearchResultPerPage  int `json:"search_result_per_page" yaml:"search_result_per_page"`

	PhotoSmallSize   int    `json:"photo_small_size" yaml:"photo_small_size"`
	PhotoMediumSize  int    `json:"photo_medium_size" yaml:"photo_medium_size"`
	PhotoSmallSuffix string `json:"photo_small_suffix" yaml:"photo_small_suffix"`
	PhotoMedSuffix   string `json:"photo_medium_suffix" yaml:"photo_medium_suffix"`

	// 头像尺寸 s, m, l
	AvatarSizes []int `json:"avatar_sizes" yaml:"avatar_sizes"`

	// 上传大小上限(字节)
	MaxUploadSize int64 `json:"max_upload_size" yaml:"max_upload_size"`

	HashIDSalt string `json:"hashid_salt" yaml:"hashid_salt"`
}

func (m *Moments) applyDefaults() {
	setInt := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	setInt(&m.PhotoPerPage, 12)
	setInt(&m.CommentPerPage, 15)
	setInt(&m.NotificationPerPage, 20)
	setInt(&m.UserPerPage, 20)
	setInt(&m.ManagePhotoPerPage, 20)
	setInt(&m.ManageUserPerPage, 30)
	setInt(&m.ManageTagPerPage, 50)
	setInt(&m.ManageCommentPerPage, 30)
	setInt(&m.SearchResultPerPage, 20)
	setInt(&m.PhotoSmallSize, 400)
	setInt(&m.PhotoMediumSize, 800)
	if m.PhotoSmallSuffix == "" {
		m.PhotoSmallSuffix = "_s"
	}
	if m.PhotoMedSuffix == "" {
		m.PhotoMedSuffix = "_m"
	}
	if len(m.AvatarSizes) != 3 {
		m.AvatarSizes = []int{30, 100, 200}
	}
	if m.MaxUploadSize <= 0 {
		m.MaxUploadSize = 3 << 20
	}
	if m.HashIDSalt == "" {
		m.HashIDSalt = "moments"
	}
}
