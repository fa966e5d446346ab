package dto

/* ===================== Request ===================== */

// CreatePaymentRequest = pencatatan pembayaran manual oleh staf.
type CreatePaymentRequest struct {
	BillID   uint    `json:"bill_id" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required"` // YYYY-MM-DD
	Method   string  `json:"method" validate:"required,oneof=cash bank_transfer virtual_account qris ewallet"`
	Amount   int64   `json:"amount" validate:"required,gt=0"`
	ProofURL *string `json:"proof_url" validate:"omitempty,url"`
	Note     *string `json:"note"`
}

// UpdatePaymentRequest mengganti seluruh field pembayaran; bill_id boleh
// dipindah ke tagihan lain (koreksi salah input).
type UpdatePaymentRequest struct {
	BillID   uint    `json:"bill_id" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required"`
	Method   string  `json:"method" validate:"required,oneof=cash bank_transfer virtual_account qris ewallet"`
	Amount   int64   `json:"amount" validate:"required,gt=0"`
	ProofURL *string `json:"proof_url" validate:"omitempty,url"`
	Note     *string `json:"note"`
}
