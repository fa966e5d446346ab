package model

import "time"

/* ===================== Model ===================== */

// AcademicPeriod = tahun ajaran. Nama wajib berformat "YYYY/YYYY";
// tarif SPP bulanan disalin ke tagihan saat generate, jadi perubahan
// tarif tidak mengubah tagihan yang sudah ada.
type AcademicPeriod struct {
	AcademicPeriodID   uint   `gorm:"column:academic_period_id;primaryKey;autoIncrement" json:"academic_period_id"`
	AcademicPeriodName string `gorm:"column:academic_period_name;type:varchar(16);not null;uniqueIndex" json:"academic_period_name"`

	// Tarif SPP per bulan dalam rupiah
	AcademicPeriodMonthlyRate int64 `gorm:"column:academic_period_monthly_rate;not null;check:academic_period_monthly_rate > 0" json:"academic_period_monthly_rate"`

	CreatedAt time.Time `gorm:"column:academic_period_created_at;autoCreateTime" json:"academic_period_created_at"`
	UpdatedAt time.Time `gorm:"column:academic_period_updated_at;autoUpdateTime" json:"academic_period_updated_at"`
}

func (AcademicPeriod) TableName() string { return "academic_period" }
