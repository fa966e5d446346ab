package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

func deletePeriodApp(f *storetest.FakeLedger) *fiber.App {
	ctrl := NewAcademicPeriodController(nil, f)
	app := fiber.New()
	app.Delete("/academic-periods/:id", ctrl.DeletePeriod)
	return app
}

func TestDeletePeriodWithBillsConflicts(t *testing.T) {
	f := storetest.NewFakeLedger()
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
	app := deletePeriodApp(f)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/academic-periods/1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, mau 409", resp.StatusCode)
	}
}

func TestDeletePeriodBadID(t *testing.T) {
	app := deletePeriodApp(storetest.NewFakeLedger())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/academic-periods/0", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", resp.StatusCode)
	}
}
