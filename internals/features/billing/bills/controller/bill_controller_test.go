package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	billmodel "digischool_backend/internals/features/billing/bills/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

func deleteBillApp(f *storetest.FakeLedger) *fiber.App {
	ctrl := NewBillController(nil, f)
	app := fiber.New()
	app.Delete("/bills/:id", ctrl.DeleteBill)
	return app
}

func seedBill(f *storetest.FakeLedger, id uint) {
	f.Bills[id] = &billmodel.Bill{
		BillID:        id,
		BillStudentID: 1,
		BillPeriodID:  1,
		BillMonth:     "Juli",
		BillYear:      2024,
		BillAmount:    150_000,
		BillStatus:    billmodel.BillStatusPending,
		BillDueDate:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestDeleteBillWithPaymentConflicts(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1)
	f.Payments[1] = &paymodel.Payment{
		PaymentID:     1,
		PaymentBillID: 1,
		PaymentMethod: paymodel.PaymentMethodCash,
		PaymentAmount: 150_000,
		PaymentDate:   time.Now(),
	}
	app := deleteBillApp(f)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/bills/1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, mau 409", resp.StatusCode)
	}
	if _, ok := f.Bills[1]; !ok {
		t.Fatal("tagihan dengan pembayaran tidak boleh terhapus")
	}
	if _, ok := f.Payments[1]; !ok {
		t.Fatal("pembayaran ikut hilang padahal delete ditolak")
	}
}

func TestDeleteBillWithoutPayment(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedBill(f, 1)
	app := deleteBillApp(f)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/bills/1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if _, ok := f.Bills[1]; ok {
		t.Fatal("tagihan tanpa pembayaran harus terhapus")
	}
}

func TestDeleteBillNotFound(t *testing.T) {
	app := deleteBillApp(storetest.NewFakeLedger())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/bills/99", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, mau 404", resp.StatusCode)
	}
}
