package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	billmodel "digischool_backend/internals/features/billing/bills/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

func seedBill(f *storetest.FakeLedger, id uint, status string) *billmodel.Bill {
	b := &billmodel.Bill{
		BillID:        id,
		BillStudentID: 1,
		BillPeriodID:  1,
		BillMonth:     "Juli",
		BillYear:      2024,
		BillAmount:    150_000,
		BillStatus:    status,
		BillDueDate:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
	}
	f.Bills[id] = b
	return b
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	return fe.Code
}

func TestRecordMarksBillPaid(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1, billmodel.BillStatusPending)
	svc := NewPaymentService(f)

	p, err := svc.Record(context.Background(), RecordInput{
		BillID: 1,
		Date:   time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
		Method: paymodel.PaymentMethodCash,
		Amount: 150_000,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.PaymentID == 0 {
		t.Fatal("payment id tidak terisi")
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPaid {
		t.Fatalf("bill status = %q, mau paid", got)
	}
}

func TestRecordBillNotFound(t *testing.T) {
	f := storetest.NewFakeLedger()
	svc := NewPaymentService(f)

	_, err := svc.Record(context.Background(), RecordInput{BillID: 99, Method: paymodel.PaymentMethodCash, Amount: 1})
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("code = %d, mau 404", code)
	}
}

func TestRecordRejectsSecondPayment(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1, billmodel.BillStatusPending)
	svc := NewPaymentService(f)

	in := RecordInput{BillID: 1, Method: paymodel.PaymentMethodCash, Amount: 150_000, Date: time.Now()}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("Record pertama: %v", err)
	}
	_, err := svc.Record(context.Background(), in)
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Fatalf("code = %d, mau 409", code)
	}
	if len(f.Payments) != 1 {
		t.Fatalf("payments = %d, mau 1", len(f.Payments))
	}
}

func TestUpdateRepointsBills(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1, billmodel.BillStatusPending)
	seedBill(f, 2, billmodel.BillStatusPending)
	svc := NewPaymentService(f)

	p, err := svc.Record(context.Background(), RecordInput{BillID: 1, Method: paymodel.PaymentMethodCash, Amount: 150_000, Date: time.Now()})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	_, err = svc.Update(context.Background(), UpdateInput{
		PaymentID: p.PaymentID,
		BillID:    2,
		Date:      time.Now(),
		Method:    paymodel.PaymentMethodBankTransfer,
		Amount:    150_000,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPending {
		t.Fatalf("bill lama = %q, mau pending", got)
	}
	if got := f.Bills[2].BillStatus; got != billmodel.BillStatusPaid {
		t.Fatalf("bill baru = %q, mau paid", got)
	}
}

func TestUpdateRejectsOccupiedTarget(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1, billmodel.BillStatusPending)
	seedBill(f, 2, billmodel.BillStatusPending)
	svc := NewPaymentService(f)

	p1, _ := svc.Record(context.Background(), RecordInput{BillID: 1, Method: paymodel.PaymentMethodCash, Amount: 150_000, Date: time.Now()})
	if _, err := svc.Record(context.Background(), RecordInput{BillID: 2, Method: paymodel.PaymentMethodCash, Amount: 150_000, Date: time.Now()}); err != nil {
		t.Fatalf("Record kedua: %v", err)
	}

	_, err := svc.Update(context.Background(), UpdateInput{
		PaymentID: p1.PaymentID,
		BillID:    2,
		Date:      time.Now(),
		Method:    paymodel.PaymentMethodCash,
		Amount:    150_000,
	})
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Fatalf("code = %d, mau 409", code)
	}
}

func TestDeleteRevertsBillToPending(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1, billmodel.BillStatusPending)
	svc := NewPaymentService(f)

	p, _ := svc.Record(context.Background(), RecordInput{BillID: 1, Method: paymodel.PaymentMethodCash, Amount: 150_000, Date: time.Now()})
	if err := svc.Delete(context.Background(), p.PaymentID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPending {
		t.Fatalf("bill status = %q, mau pending", got)
	}
	if len(f.Payments) != 0 {
		t.Fatalf("payments = %d, mau 0", len(f.Payments))
	}

	// setelah dihapus, tagihan bisa dicatat ulang
	if _, err := svc.Record(context.Background(), RecordInput{BillID: 1, Method: paymodel.PaymentMethodBankTransfer, Amount: 150_000, Date: time.Now()}); err != nil {
		t.Fatalf("Record ulang setelah delete: %v", err)
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPaid {
		t.Fatalf("bill status setelah record ulang = %q, mau paid", got)
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	f := storetest.NewFakeLedger()
	svc := NewPaymentService(f)

	err := svc.Delete(context.Background(), 42)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("code = %d, mau 404", code)
	}
}
