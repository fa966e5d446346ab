package model

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	UserID       uint   `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserUsername string `gorm:"column:user_username;type:varchar(64);not null;uniqueIndex" json:"user_username"`
	// bcrypt hash, tidak pernah ikut response
	UserPassword string `gorm:"column:user_password;type:varchar(128);not null" json:"-"`
	UserName     string `gorm:"column:user_name;type:varchar(128);not null" json:"user_name"`
	UserRole     string `gorm:"column:user_role;type:varchar(16);not null;default:'staff'" json:"user_role"`

	CreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (User) TableName() string { return "user" }
