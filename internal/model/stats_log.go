package model

import "time"

const (
	StatsSuccess         = "success"
	StatsFailed          = "failed"
	StatsOTPRequested    = "otp_requested"
	StatsOTPFailed       = "otp_failed"
	StatsOTPLoginSuccess = "otp_login_success"
	StatsOTPLoginFailed  = "otp_login_failed"
)

// StatsLog records one authentication-related request. Attempted
// passwords are never stored.
type StatsLog struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	IP             string    `gorm:"size:64;not null"`
	Method         string    `gorm:"size:10;not null"`
	URL            string    `gorm:"size:500;not null"`
	UserAgent      string    `gorm:"size:500"`
	OS             string    `gorm:"size:100"`
	Browser        string    `gorm:"size:100"`
	DeviceType     string    `gorm:"size:20"`
	Login          string    `gorm:"size:191;index"`
	Status         string    `gorm:"size:30;not null"`
	AttemptedLogin string    `gorm:"size:191;index"`
	CreatedAt      time.Time `gorm:"index"`
}

func (StatsLog) TableName() string {
	return "stats_logs"
}
