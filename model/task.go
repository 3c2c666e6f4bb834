// Package model defines database models
package model

import "time"

type Task struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"not null" json:"description"`
	Completed   bool   `gorm:"default:false" json:"completed"`

	// Owning user's ID. There is no foreign-key constraint in SQLite
	// here, ownership is enforced by the handlers and the account
	// delete cascade
	OwnerID string `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
