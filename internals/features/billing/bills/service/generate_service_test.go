package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	apmodel "digischool_backend/internals/features/academics/academic_periods/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

func TestParsePeriodName(t *testing.T) {
	start, end, err := ParsePeriodName("2024/2025")
	if err != nil {
		t.Fatalf("ParsePeriodName: %v", err)
	}
	if start != 2024 || end != 2025 {
		t.Fatalf("hasil = %d/%d, mau 2024/2025", start, end)
	}

	for _, bad := range []string{"2024", "2024-2025", "abc/2025", "2024/xyz", ""} {
		if _, _, err := ParsePeriodName(bad); err == nil {
			t.Fatalf("ParsePeriodName(%q) harus error", bad)
		}
	}
}

func TestBuildYearSchedule(t *testing.T) {
	entries := BuildYearSchedule(2024, 2025)
	if len(entries) != 12 {
		t.Fatalf("entries = %d, mau 12", len(entries))
	}
	if entries[0].Month != "Juli" || entries[0].Year != 2024 {
		t.Fatalf("entry pertama = %s %d, mau Juli 2024", entries[0].Month, entries[0].Year)
	}
	if entries[5].Month != "Desember" || entries[5].Year != 2024 {
		t.Fatalf("entry keenam = %s %d, mau Desember 2024", entries[5].Month, entries[5].Year)
	}
	if entries[6].Month != "Januari" || entries[6].Year != 2025 {
		t.Fatalf("entry ketujuh = %s %d, mau Januari 2025", entries[6].Month, entries[6].Year)
	}
	if entries[11].Month != "Juni" || entries[11].Year != 2025 {
		t.Fatalf("entry terakhir = %s %d, mau Juni 2025", entries[11].Month, entries[11].Year)
	}
	for _, e := range entries {
		if e.DueDate.Day() != 15 {
			t.Fatalf("jatuh tempo %s = tanggal %d, mau 15", e.Month, e.DueDate.Day())
		}
	}
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !entries[6].DueDate.Equal(want) {
		t.Fatalf("jatuh tempo Januari = %v, mau %v", entries[6].DueDate, want)
	}
}

func seedPeriodAndStudent(f *storetest.FakeLedger) {
	f.Periods[1] = &apmodel.AcademicPeriod{
		AcademicPeriodID:          1,
		AcademicPeriodName:        "2024/2025",
		AcademicPeriodMonthlyRate: 150_000,
	}
	f.Students[1] = &studentmodel.Student{
		StudentID:   1,
		StudentNIS:  "2024001",
		StudentName: "Budi Santoso",
	}
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	return fe.Code
}

func TestGenerateYearOfBills(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPeriodAndStudent(f)
	svc := NewGenerateService(f)

	bills, err := svc.GenerateYearOfBills(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GenerateYearOfBills: %v", err)
	}
	if len(bills) != 12 {
		t.Fatalf("bills = %d, mau 12", len(bills))
	}
	for _, b := range bills {
		if b.BillAmount != 150_000 {
			t.Fatalf("amount %s = %d, mau 150000", b.BillMonth, b.BillAmount)
		}
		if b.BillStatus != billmodel.BillStatusPending {
			t.Fatalf("status %s = %q, mau pending", b.BillMonth, b.BillStatus)
		}
	}
	if bills[0].BillMonth != "Juli" || bills[0].BillYear != 2024 {
		t.Fatalf("bill pertama = %s %d, mau Juli 2024", bills[0].BillMonth, bills[0].BillYear)
	}
	if bills[6].BillMonth != "Januari" || bills[6].BillYear != 2025 {
		t.Fatalf("bill ketujuh = %s %d, mau Januari 2025", bills[6].BillMonth, bills[6].BillYear)
	}
}

func TestGenerateAmountFrozenAfterRateChange(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPeriodAndStudent(f)
	svc := NewGenerateService(f)

	if _, err := svc.GenerateYearOfBills(context.Background(), 1, 1); err != nil {
		t.Fatalf("GenerateYearOfBills: %v", err)
	}
	f.Periods[1].AcademicPeriodMonthlyRate = 200_000

	for _, b := range f.Bills {
		if b.BillAmount != 150_000 {
			t.Fatalf("amount berubah ikut tarif baru: %d", b.BillAmount)
		}
	}
}

func TestGenerateSecondCallConflicts(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPeriodAndStudent(f)
	svc := NewGenerateService(f)

	if _, err := svc.GenerateYearOfBills(context.Background(), 1, 1); err != nil {
		t.Fatalf("generate pertama: %v", err)
	}
	_, err := svc.GenerateYearOfBills(context.Background(), 1, 1)
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Fatalf("code = %d, mau 409", code)
	}
	if len(f.Bills) != 12 {
		t.Fatalf("bills = %d, mau tetap 12", len(f.Bills))
	}
}

func TestGenerateUnknownRefs(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPeriodAndStudent(f)
	svc := NewGenerateService(f)

	_, err := svc.GenerateYearOfBills(context.Background(), 1, 99)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("period 99: code = %d, mau 404", code)
	}
	_, err = svc.GenerateYearOfBills(context.Background(), 99, 1)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("student 99: code = %d, mau 404", code)
	}
}

func TestGenerateBadPeriodName(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedPeriodAndStudent(f)
	f.Periods[1].AcademicPeriodName = "Ganjil 2024"
	svc := NewGenerateService(f)

	_, err := svc.GenerateYearOfBills(context.Background(), 1, 1)
	if code := fiberStatus(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("code = %d, mau 400", code)
	}
}
