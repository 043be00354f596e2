package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionOption struct {
	Content  string `json:"content" binding:"required"`
	IsAnswer bool   `json:"isAnswer"`
	Order    int    `json:"order"`
}

type Question struct {
	Title      string           `json:"title" binding:"required"`
	OptionFile string           `json:"optionFile,omitempty"`
	Options    []QuestionOption `json:"options" binding:"required,min=1,dive"`
	Order      int              `json:"order"`
}

// AttemptAnswer is one graded answer of a submission.
type AttemptAnswer struct {
	QuestionIndex       int  `json:"questionIndex"`
	SelectedOptionIndex int  `json:"selectedOptionIndex"`
	Correct             bool `json:"correct"`
}

type Exam struct {
	BaseModel
	Title       Localized
	Description Localized
	Content     Localized
	ImageURL    string `gorm:"size:500;not null"`
	Slug        string `gorm:"size:191;uniqueIndex;not null"`
	CreatedByID uint
	CreatedBy   *User                         `gorm:"foreignKey:CreatedByID"`
	Questions   datatypes.JSONSlice[Question] `gorm:"type:json"`
	Deadline    *time.Time
	Timer       string `gorm:"size:50"`
	IsActive    bool   `gorm:"not null"`

	Responsible []User        `gorm:"many2many:exam_responsibles;"`
	Lessons     []Lesson      `gorm:"many2many:lesson_exams;"`
	Groups      []Group       `gorm:"many2many:group_exams;"`
	Attempts    []ExamAttempt `gorm:"foreignKey:ExamID"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamAttempt is the exam-side copy of a submission.
type ExamAttempt struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	ExamID      uint `gorm:"index;not null"`
	UserID      uint `gorm:"index;not null"`
	User        *User
	Score       int
	Answers     datatypes.JSONSlice[AttemptAnswer] `gorm:"type:json"`
	SubmittedAt time.Time
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// UserExamAttempt is the user-side copy of a submission.
type UserExamAttempt struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	UserID      uint `gorm:"index;not null"`
	ExamID      uint `gorm:"index;not null"`
	Score       int
	Answers     datatypes.JSONSlice[AttemptAnswer] `gorm:"type:json"`
	SubmittedAt time.Time
}

func (UserExamAttempt) TableName() string {
	return "user_exam_attempts"
}
