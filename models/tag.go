package models

type Tag struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(64);not null;uniqueIndex:uk_tag_name" json:"name"`
}

func (Tag) TableName() string {
	return "tag"
}
