package model

import "time"

type Class struct {
	ClassID    uint   `gorm:"column:class_id;primaryKey;autoIncrement" json:"class_id"`
	ClassName  string `gorm:"column:class_name;type:varchar(64);not null" json:"class_name"`
	ClassLevel string `gorm:"column:class_level;type:varchar(16)" json:"class_level"` // tingkat: VII, VIII, IX, ...

	CreatedAt time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	UpdatedAt time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (Class) TableName() string { return "class" }
