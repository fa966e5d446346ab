package dto

/* ===================== Request ===================== */

// GenerateBillsRequest = permintaan generate 12 tagihan sekaligus untuk satu
// siswa pada satu tahun ajaran.
type GenerateBillsRequest struct {
	StudentID uint `json:"student_id" validate:"required,gt=0"`
	PeriodID  uint `json:"period_id" validate:"required,gt=0"`
}

// UpdateBillRequest mengganti seluruh field tagihan (bukan patch); hanya
// note yang opsional.
type UpdateBillRequest struct {
	StudentID uint    `json:"student_id" validate:"required,gt=0"`
	PeriodID  uint    `json:"period_id" validate:"required,gt=0"`
	Month     string  `json:"month" validate:"required"`
	Year      int     `json:"year" validate:"required,gt=2000"`
	Amount    int64   `json:"amount" validate:"required,gt=0"`
	Status    string  `json:"status" validate:"required,oneof=pending paid failed"`
	DueDate   string  `json:"due_date" validate:"required"` // YYYY-MM-DD
	Note      *string `json:"note"`
}
