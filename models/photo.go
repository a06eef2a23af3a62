package models

import "time"

type Photo struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Description string    `gorm:"column:description;type:varchar(500);not null;default:''" json:"description"`
	Filename    string    `gorm:"column:filename;type:varchar(64);not null" json:"filename"`
	FilenameS   string    `gorm:"column:filename_s;type:varchar(64);not null" json:"filename_s"`
	FilenameM   string    `gorm:"column:filename_m;type:varchar(64);not null" json:"filename_m"`
	CanComment  bool      `gorm:"column:can_comment;not null" json:"can_comment"`
	Flag        int       `gorm:"column:flag;not null;default:0" json:"flag"`
	AuthorID    uint64    `gorm:"column:author_id;not null;index:idx_photo_author" json:"author_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_photo_created_at" json:"created_at"`
}

func (Photo) TableName() string {
	return "photo"
}

// PhotoTag 照片与标签的中间表
type PhotoTag struct {
	PhotoID uint64 `gorm:"column:photo_id;primaryKey;autoIncrement:false" json:"photo_id"`
	TagID   uint64 `gorm:"column:tag_id;primaryKey;autoIncrement:false;index:idx_photo_tag_tag" json:"tag_id"`
}

func (PhotoTag) TableName() string {
	return "tagging"
}

// Files 原图及缩略图的存储 key, 未生成缩略图时与原图相同, 去重后返回
func (p *Photo) Files() []string {
	files := make([]string, 0, 3)
	seen := make(map[string]bool, 3)
	for _, name := range []string{p.Filename, p.FilenameS, p.FilenameM} {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		files = append(files, name)
	}
	return files
}
