package model

import "gorm.io/datatypes"

type News struct {
	BaseModel
	Title       Localized
	Description Localized
	Content     Localized
	Tags        datatypes.JSONSlice[string] `gorm:"type:json"`
	ImageURL    string                      `gorm:"size:500;not null"`
	Slug        string                      `gorm:"size:191;uniqueIndex;not null"`
}

func (News) TableName() string {
	return "news"
}
