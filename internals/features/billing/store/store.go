package store

import (
	"context"
	"errors"

	apmodel "digischool_backend/internals/features/academics/academic_periods/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
)

var (
	ErrNotFound = errors.New("record tidak ditemukan")
	// ErrDuplicate dikembalikan saat unique constraint kena (mis. dua
	// pembayaran balapan untuk satu tagihan); pemanggil yang memutuskan
	// apakah ini conflict (manual) atau no-op (webhook duplikat).
	ErrDuplicate = errors.New("record duplikat")
)

// Ledger adalah satu-satunya pintu mutasi Bill/Payment. Semua operasi yang
// menulis status tagihan + baris pembayaran sekaligus wajib lewat InTx supaya
// crash di tengah tidak meninggalkan bill "paid" tanpa payment (atau
// sebaliknya).
type Ledger interface {
	BillStore
	PaymentStore
	EventStore

	// InTx menjalankan fn dalam satu transaksi database; Ledger yang
	// diterima fn sudah terikat ke transaksi tersebut.
	InTx(ctx context.Context, fn func(Ledger) error) error
}

type BillStore interface {
	BillByID(ctx context.Context, id uint) (*billmodel.Bill, error)
	// BillByIDLocked mengambil bill dengan row lock (SELECT ... FOR UPDATE);
	// hanya bermakna di dalam InTx.
	BillByIDLocked(ctx context.Context, id uint) (*billmodel.Bill, error)
	BillByOrderID(ctx context.Context, orderID string) (*billmodel.Bill, error)
	BillByOrderIDLocked(ctx context.Context, orderID string) (*billmodel.Bill, error)
	CountBillsForStudentPeriod(ctx context.Context, studentID, periodID uint) (int64, error)
	CountBillsForPeriod(ctx context.Context, periodID uint) (int64, error)
	CountBillsForStudent(ctx context.Context, studentID uint) (int64, error)
	CreateBills(ctx context.Context, bills []*billmodel.Bill) error
	SaveBill(ctx context.Context, b *billmodel.Bill) error
	DeleteBill(ctx context.Context, id uint) error

	PeriodByID(ctx context.Context, id uint) (*apmodel.AcademicPeriod, error)
	StudentByID(ctx context.Context, id uint) (*studentmodel.Student, error)
}

type PaymentStore interface {
	PaymentByID(ctx context.Context, id uint) (*paymodel.Payment, error)
	// PaymentByBillID mengembalikan (nil, nil) jika tagihan belum punya pembayaran.
	PaymentByBillID(ctx context.Context, billID uint) (*paymodel.Payment, error)
	CreatePayment(ctx context.Context, p *paymodel.Payment) error
	SavePayment(ctx context.Context, p *paymodel.Payment) error
	DeletePayment(ctx context.Context, id uint) error
}

type EventStore interface {
	// CreateEvent menyimpan log notifikasi gateway; ErrDuplicate saat
	// delivery identik (order_id + transaction_status) sudah pernah dicatat.
	CreateEvent(ctx context.Context, ev *gwmodel.GatewayEvent) error
	MarkEvent(ctx context.Context, orderID, eventType, status string, errMsg *string) error
}
