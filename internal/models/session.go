package models

import "time"

// UserSession is one signed-in device. A token is only honored while
// its session row exists, is unexpired and has not been revoked, which
// is what makes logout and change-password take effect immediately.
type UserSession struct {
	Base
	UserID    string     `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
