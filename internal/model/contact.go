package model

type Contact struct {
	BaseModel
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Message   string `gorm:"type:text;not null"`
	Phone     string `gorm:"size:30;not null"`
	Email     string `gorm:"size:191;not null"`
	IsReply   bool   `gorm:"not null"`
}

func (Contact) TableName() string {
	return "contacts"
}
