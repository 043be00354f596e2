package model

type Group struct {
	BaseModel
	Title       Localized `gorm:"not null"`
	CreatedByID uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID"`

	Users       []User   `gorm:"many2many:group_users;"`
	Responsible []User   `gorm:"many2many:group_responsibles;"`
	Lessons     []Lesson `gorm:"many2many:group_lessons;"`
	Exams       []Exam   `gorm:"many2many:group_exams;"`
}

func (Group) TableName() string {
	return "study_groups"
}
