package model

import "time"

// Token is one issued session token. A user's token list is the set of
// rows carrying their ID, so logging out server-side is a row delete and
// not just waiting for the JWT to expire.
type Token struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
