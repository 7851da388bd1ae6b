package models

import "time"

// UserModel represents a registered journal owner. Every other entity is
// owned by a user via user_id; there is no cross-user sharing.
type UserModel struct {
	Base
	Username      string     `json:"username"        gorm:"uniqueIndex;not null"`
	Email         string     `json:"email"           gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"               gorm:"not null"` // bcrypt, never exposed
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
