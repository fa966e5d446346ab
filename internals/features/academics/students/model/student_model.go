package model

import "time"

type Student struct {
	StudentID  uint   `gorm:"column:student_id;primaryKey;autoIncrement" json:"student_id"`
	StudentNIS string `gorm:"column:student_nis;type:varchar(32);not null;uniqueIndex" json:"student_nis"`

	StudentName    string  `gorm:"column:student_name;type:varchar(128);not null" json:"student_name"`
	StudentGender  string  `gorm:"column:student_gender;type:varchar(1)" json:"student_gender"` // L / P
	StudentAddress *string `gorm:"column:student_address" json:"student_address,omitempty"`

	StudentBirthDate *time.Time `gorm:"column:student_birth_date;type:date" json:"student_birth_date,omitempty"`
	StudentPhone     *string    `gorm:"column:student_phone;type:varchar(20)" json:"student_phone,omitempty"`
	StudentEmail     *string    `gorm:"column:student_email;type:varchar(128)" json:"student_email,omitempty"`

	StudentClassID uint `gorm:"column:student_class_id;not null;index" json:"student_class_id"`

	CreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	UpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (Student) TableName() string { return "student" }
