package model

import "gorm.io/datatypes"

type Material struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Order int    `json:"order"`
}

type Lesson struct {
	BaseModel
	Title       Localized
	Description Localized
	Content     Localized
	ImageURL    string `gorm:"size:500;not null"`
	Slug        string `gorm:"size:191;uniqueIndex;not null"`
	CreatedByID uint
	CreatedBy   *User                        `gorm:"foreignKey:CreatedByID"`
	Materials   datatypes.JSONSlice[Material] `gorm:"type:json"`
	IsActive    bool                         `gorm:"not null"`

	Groups []Group `gorm:"many2many:group_lessons;"`
	Exams  []Exam  `gorm:"many2many:lesson_exams;"`
}

func (Lesson) TableName() string {
	return "lessons"
}
