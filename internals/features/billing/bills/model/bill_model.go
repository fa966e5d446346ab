package model

import "time"

/* ===================== Enums (string) ===================== */

const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusFailed  = "failed"
)

/* ===================== Model ===================== */

// Bill = tagihan SPP satu bulan untuk satu siswa pada satu tahun ajaran.
// Status bill adalah sumber kebenaran "sudah dibayar atau belum"; hanya
// Payment Ledger dan Gateway Reconciler yang boleh mengubahnya.
type Bill struct {
	BillID uint `gorm:"column:bill_id;primaryKey;autoIncrement" json:"bill_id"`

	BillStudentID uint `gorm:"column:bill_student_id;not null;index;uniqueIndex:uq_bill_student_period_month,priority:1" json:"bill_student_id"`
	BillPeriodID  uint `gorm:"column:bill_period_id;not null;index;uniqueIndex:uq_bill_student_period_month,priority:2" json:"bill_period_id"`

	BillMonth string `gorm:"column:bill_month;type:varchar(16);not null;uniqueIndex:uq_bill_student_period_month,priority:3" json:"bill_month"` // Juli..Juni
	BillYear  int    `gorm:"column:bill_year;not null" json:"bill_year"`

	// Nominal dibekukan dari tarif tahun ajaran saat generate
	BillAmount  int64     `gorm:"column:bill_amount;not null;check:bill_amount > 0" json:"bill_amount"`
	BillStatus  string    `gorm:"column:bill_status;type:varchar(16);not null;default:'pending'" json:"bill_status"`
	BillDueDate time.Time `gorm:"column:bill_due_date;type:date;not null" json:"bill_due_date"`
	BillNote    *string   `gorm:"column:bill_note" json:"bill_note,omitempty"`

	// Info gateway (terisi hanya untuk pembayaran online)
	BillMidtransOrderID        *string    `gorm:"column:bill_midtrans_order_id;uniqueIndex" json:"bill_midtrans_order_id,omitempty"` // correlation id notifikasi
	BillMidtransTransactionID  *string    `gorm:"column:bill_midtrans_transaction_id" json:"bill_midtrans_transaction_id,omitempty"`
	BillMidtransStatus         *string    `gorm:"column:bill_midtrans_status;type:varchar(24)" json:"bill_midtrans_status,omitempty"`
	BillMidtransPaymentType    *string    `gorm:"column:bill_midtrans_payment_type;type:varchar(32)" json:"bill_midtrans_payment_type,omitempty"`
	BillMidtransTransactionAt  *time.Time `gorm:"column:bill_midtrans_transaction_at" json:"bill_midtrans_transaction_at,omitempty"`
	BillMidtransSettlementAt   *time.Time `gorm:"column:bill_midtrans_settlement_at" json:"bill_midtrans_settlement_at,omitempty"`

	CreatedAt time.Time `gorm:"column:bill_created_at;autoCreateTime" json:"bill_created_at"`
	UpdatedAt time.Time `gorm:"column:bill_updated_at;autoUpdateTime" json:"bill_updated_at"`
}

func (Bill) TableName() string { return "bill" }

func (b *Bill) IsPaid() bool { return b.BillStatus == BillStatusPaid }
