package controller

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/gateway/service"
	"digischool_backend/internals/features/billing/store/storetest"
)

type recordingSnap struct {
	gotCtx context.Context
}

func (s *recordingSnap) CreateTransaction(ctx context.Context, p service.TransactionParams) (*service.SnapResult, error) {
	s.gotCtx = ctx
	return &service.SnapResult{Token: "tok-1", RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/tok-1"}, nil
}

// Handler harus meneruskan UserContext (yang diberi deadline oleh middleware
// di main) sampai ke gateway Snap, bukan context fasthttp tanpa deadline.
func TestInitiateTransactionForwardsRequestContext(t *testing.T) {
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
	snap := &recordingSnap{}
	ctrl := NewGatewayController(f, snap, configs.MidtransConfig{
		ServerKey: "SB-Mid-server-testsecret",
		ClientKey: "SB-Mid-client-testsecret",
	})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Post("/bills/:id/pay", ctrl.InitiateTransaction)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/bills/1/pay", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}

	if snap.gotCtx == nil {
		t.Fatal("gateway Snap tidak menerima context")
	}
	if _, ok := snap.gotCtx.Deadline(); !ok {
		t.Fatal("context request tidak membawa deadline dari middleware")
	}
	if f.Bills[1].BillMidtransOrderID == nil {
		t.Fatal("order id tidak tersimpan di tagihan")
	}
}
