package model

import (
	"time"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleClient     UserRole = "client"
	RoleTeacher    UserRole = "teacher"
	RoleJournalist UserRole = "journalist"
	RoleAssistant  UserRole = "assistant"
	RoleAdmin      UserRole = "admin"
)

var Roles = []UserRole{RoleUser, RoleClient, RoleTeacher, RoleJournalist, RoleAssistant, RoleAdmin}

func IsValidRole(r string) bool {
	for _, role := range Roles {
		if string(role) == r {
			return true
		}
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Login         string   `gorm:"size:100;uniqueIndex;not null"`
	Email         string   `gorm:"size:191;uniqueIndex;not null"`
	Password      string   `gorm:"size:100;not null"`
	FirstName     string   `gorm:"size:100;not null"`
	LastName      string   `gorm:"size:100;not null"`
	Role          UserRole `gorm:"size:20;not null;default:'user'"`
	IsVerified    bool     `gorm:"not null"`
	OTPCode       string   `gorm:"size:10"`
	OTPExpiresAt  *time.Time
	IsTempAccount bool `gorm:"not null"`
	IsActive      bool `gorm:"not null"`
	IsOTPLogin    bool `gorm:"not null"`

	Groups       []Group           `gorm:"many2many:group_users;"`
	ExamAttempts []UserExamAttempt `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// OTPValid reports whether code matches the stored one and has not expired.
func (u *User) OTPValid(code string, now time.Time) bool {
	if u.OTPCode == "" || u.OTPCode != code {
		return false
	}
	return u.OTPExpiresAt != nil && now.Before(*u.OTPExpiresAt)
}

func (u *User) GroupIDs() []uint {
	ids := make([]uint, 0, len(u.Groups))
	for _, g := range u.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}
