package model

import "time"

/* ===================== Enums (string) ===================== */

const (
	PaymentMethodCash           = "cash"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodVirtualAccount = "virtual_account"
	PaymentMethodQRIS           = "qris"
	PaymentMethodEwallet        = "ewallet"
	PaymentMethodGateway        = "gateway" // metode spesifik gateway disimpan di payment_midtrans_payment_type
)

/* ===================== Model ===================== */

// Payment = pembayaran yang melunasi tepat satu Bill. Unique index di
// payment_bill_id menjamin maksimal satu pembayaran per tagihan meski ada
// dua request balapan; yang kalah mendeteksi duplicate key.
type Payment struct {
	PaymentID uint `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`

	PaymentBillID uint `gorm:"column:payment_bill_id;not null;uniqueIndex:uq_payment_bill" json:"payment_bill_id"`

	PaymentDate   time.Time `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(32);not null" json:"payment_method"`
	PaymentAmount int64     `gorm:"column:payment_amount;not null;check:payment_amount > 0" json:"payment_amount"`

	PaymentProofURL *string `gorm:"column:payment_proof_url" json:"payment_proof_url,omitempty"`
	PaymentNote     *string `gorm:"column:payment_note" json:"payment_note,omitempty"`

	// Info gateway (kosong untuk entri manual)
	PaymentMidtransOrderID       *string `gorm:"column:payment_midtrans_order_id" json:"payment_midtrans_order_id,omitempty"`
	PaymentMidtransTransactionID *string `gorm:"column:payment_midtrans_transaction_id" json:"payment_midtrans_transaction_id,omitempty"`
	PaymentMidtransPaymentType   *string `gorm:"column:payment_midtrans_payment_type;type:varchar(32)" json:"payment_midtrans_payment_type,omitempty"`

	CreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (Payment) TableName() string { return "payment" }
