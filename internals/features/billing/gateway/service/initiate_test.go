package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

type fakeSnap struct {
	lastParams TransactionParams
	err        error
}

func (s *fakeSnap) CreateTransaction(ctx context.Context, p TransactionParams) (*SnapResult, error) {
	s.lastParams = p
	if s.err != nil {
		return nil, s.err
	}
	return &SnapResult{Token: "tok-abc", RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/redirection/tok-abc"}, nil
}

func seedPendingBill(f *storetest.FakeLedger) {
	f.Bills[1] = &billmodel.Bill{
		BillID:        1,
		BillStudentID: 1,
		BillPeriodID:  1,
		BillMonth:     "Juli",
		BillYear:      2024,
		BillAmount:    150_000,
		BillStatus:    billmodel.BillStatusPending,
		BillDueDate:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
	}
	f.Students[1] = &studentmodel.Student{StudentID: 1, StudentNIS: "2024001", StudentName: "Budi Santoso"}
}

func TestInitiateStoresOrderCorrelation(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPendingBill(f)
	snap := &fakeSnap{}
	svc := NewInitiateService(f, snap, testConfig())
	svc.now = func() time.Time { return time.UnixMilli(1_720_000_000_000) }

	res, err := svc.Initiate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	wantOrder := "SPP-1-1720000000000"
	if res.OrderID != wantOrder {
		t.Fatalf("order id = %s, mau %s", res.OrderID, wantOrder)
	}
	if res.Token != "tok-abc" || !strings.Contains(res.RedirectURL, "tok-abc") {
		t.Fatalf("hasil snap tidak diteruskan: %+v", res)
	}
	if snap.lastParams.GrossAmount != 150_000 {
		t.Fatalf("gross = %d, mau nominal tagihan", snap.lastParams.GrossAmount)
	}
	if snap.lastParams.StudentName != "Budi Santoso" {
		t.Fatalf("nama siswa = %q", snap.lastParams.StudentName)
	}

	b := f.Bills[1]
	if b.BillMidtransOrderID == nil || *b.BillMidtransOrderID != wantOrder {
		t.Fatal("order id tidak tersimpan di bill")
	}
	if b.BillMidtransStatus == nil || *b.BillMidtransStatus != "pending" {
		t.Fatal("midtrans status awal harus pending")
	}
	if b.BillStatus != billmodel.BillStatusPending {
		t.Fatalf("bill status = %q, initiate tidak boleh mengubahnya", b.BillStatus)
	}
}

func TestInitiatePaidBillConflicts(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPendingBill(f)
	f.Bills[1].BillStatus = billmodel.BillStatusPaid
	svc := NewInitiateService(f, &fakeSnap{}, testConfig())

	_, err := svc.Initiate(context.Background(), 1)
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Fatalf("code = %d, mau 409", code)
	}
}

func TestInitiateUnknownBill(t *testing.T) {
	f := storetest.NewFakeLedger()
	svc := NewInitiateService(f, &fakeSnap{}, testConfig())

	_, err := svc.Initiate(context.Background(), 42)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("code = %d, mau 404", code)
	}
}

func TestInitiateInvalidConfig(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPendingBill(f)
	svc := NewInitiateService(f, &fakeSnap{}, configs.MidtransConfig{ServerKey: "salah", ClientKey: "salah"})

	_, err := svc.Initiate(context.Background(), 1)
	if code := fiberStatus(t, err); code != fiber.StatusInternalServerError {
		t.Fatalf("code = %d, mau 500", code)
	}
}

func TestInitiateGatewayDown(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPendingBill(f)
	svc := NewInitiateService(f, &fakeSnap{err: errors.New("connection refused")}, testConfig())

	_, err := svc.Initiate(context.Background(), 1)
	if code := fiberStatus(t, err); code != fiber.StatusBadGateway {
		t.Fatalf("code = %d, mau 502", code)
	}
	if f.Bills[1].BillMidtransOrderID != nil {
		t.Fatal("order id tidak boleh tersimpan saat gateway gagal")
	}
}

func TestInitiateUnauthorizedKeyIsConfigError(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPendingBill(f)
	svc := NewInitiateService(f, &fakeSnap{err: ErrGatewayUnauthorized}, testConfig())

	_, err := svc.Initiate(context.Background(), 1)
	if code := fiberStatus(t, err); code != fiber.StatusInternalServerError {
		t.Fatalf("code = %d, mau 500", code)
	}
}
