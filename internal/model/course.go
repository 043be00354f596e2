package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CourseFeatures struct {
	Lectures     string `json:"lectures" binding:"required"`
	Quizzes      string `json:"quizzes" binding:"required"`
	Duration     int    `json:"duration" binding:"required"`
	DurationType string `json:"durationType" binding:"required"`
	SkillLevel   string `json:"skillLevel" binding:"required"`
	Language     string `json:"language" binding:"required"`
	Students     int    `json:"students"`
	Assessments  bool   `json:"assessments"`
}

type CourseAlert struct {
	Type    string    `json:"type" binding:"required"`
	Color   string    `json:"color" binding:"required"`
	Content Localized `json:"content"`
}

type Course struct {
	BaseModel
	Title       Localized
	Description Localized
	Content     Localized
	ImageURL    string                             `gorm:"size:500;not null"`
	Slug        string                             `gorm:"size:191;uniqueIndex;not null"`
	Features    datatypes.JSONType[CourseFeatures] `gorm:"type:json"`
	Alert       datatypes.JSONSlice[CourseAlert]   `gorm:"type:json"`
}

func (Course) TableName() string {
	return "courses"
}

type SubCourse struct {
	BaseModel
	Title       Localized
	Description Localized
	ImageURL    string          `gorm:"size:500;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CourseSlug  *string         `gorm:"size:191;index"`
}

func (SubCourse) TableName() string {
	return "sub_courses"
}
