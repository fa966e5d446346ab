package dto

/* ===================== Request ===================== */

// AcademicPeriodRequest dipakai create dan update (full replace).
// Name format "YYYY/YYYY", mis. "2024/2025".
type AcademicPeriodRequest struct {
	Name        string `json:"name" validate:"required,max=16"`
	MonthlyRate int64  `json:"monthly_rate" validate:"required,gt=0"`
}
