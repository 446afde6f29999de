package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	DisplayName string     `json:"display_name"`
	IsAdmin     bool       `gorm:"default:false" json:"is_admin"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Holdings []Holding `gorm:"foreignKey:UserID" json:"holdings,omitempty"`
	Trades   []Trade   `gorm:"foreignKey:UserID" json:"trades,omitempty"`
}
