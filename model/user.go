package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique; not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Age          *int   `json:"age,omitempty"`

	// Raw normalized PNG bytes. Never serialized, only served
	// through the avatar endpoint
	Avatar []byte `gorm:"type:blob" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tokens []Token `gorm:"foreignKey:UserID" json:"-"`
	Tasks  []Task  `gorm:"foreignKey:OwnerID" json:"-"`
}
