package domain

import "time"

type User struct {
	ID        int64  `gorm:"primaryKey"`
	PhoneE164 string `gorm:"uniqueIndex;size:20"`
	CreatedAt time.Time
}

func (User) TableName() string { return "users" }
