package models

import (
	"time"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusPending  UserStatus = "Pending"
	UserStatusVerified UserStatus = "Verified"
	UserStatusDisabled UserStatus = "Disabled"
)

type User struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	Name   string     `gorm:"size:120;not null" json:"name"`
	Email  string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role   Role       `gorm:"size:20;not null;index" json:"role"`
	Skill  string     `gorm:"size:120" json:"skill"`
	Level  string     `gorm:"size:40" json:"level"`
	Status UserStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`

	// bcrypt hash, never the raw password
	PasswordHash string `gorm:"column:password;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
