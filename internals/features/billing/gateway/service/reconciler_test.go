package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/gateway/dto"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store/storetest"
)

const testServerKey = "SB-Mid-server-testsecret"

func testConfig() configs.MidtransConfig {
	return configs.MidtransConfig{
		ServerKey: testServerKey,
		ClientKey: "SB-Mid-client-testsecret",
	}
}

func seedOnlineBill(f *storetest.FakeLedger, orderID string) *billmodel.Bill {
	status := "pending"
	b := &billmodel.Bill{
		BillID:              1,
		BillStudentID:       1,
		BillPeriodID:        1,
		BillMonth:           "Juli",
		BillYear:            2024,
		BillAmount:          150_000,
		BillStatus:          billmodel.BillStatusPending,
		BillDueDate:         time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		BillMidtransOrderID: &orderID,
		BillMidtransStatus:  &status,
	}
	f.Bills[1] = b
	return b
}

func notification(orderID, status string) dto.MidtransNotification {
	gross := "150000.00"
	return dto.MidtransNotification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       gross,
		SignatureKey:      ComputeSignature(orderID, "200", gross, testServerKey),
		TransactionStatus: status,
		TransactionID:     "trx-123",
		TransactionTime:   "2024-07-10 09:00:00",
		SettlementTime:    "2024-07-10 09:05:00",
		PaymentType:       "qris",
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

func TestSettlementCreatesPaymentAndMarksPaid(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	ack, err := r.HandleNotification(context.Background(), notification("SPP-1-1000", "settlement"), []byte(`{}`), nil)
	if err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if ack.StatusCode != "200" {
		t.Fatalf("ack status = %s, mau 200", ack.StatusCode)
	}

	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPaid {
		t.Fatalf("bill status = %q, mau paid", got)
	}
	if f.Bills[1].BillMidtransStatus == nil || *f.Bills[1].BillMidtransStatus != "settlement" {
		t.Fatal("midtrans status tidak terisi settlement")
	}
	if len(f.Payments) != 1 {
		t.Fatalf("payments = %d, mau 1", len(f.Payments))
	}
	for _, p := range f.Payments {
		if p.PaymentMethod != paymodel.PaymentMethodGateway {
			t.Fatalf("method = %q, mau gateway", p.PaymentMethod)
		}
		if p.PaymentAmount != 150_000 {
			t.Fatalf("amount = %d, mau 150000", p.PaymentAmount)
		}
		if p.PaymentMidtransOrderID == nil || *p.PaymentMidtransOrderID != "SPP-1-1000" {
			t.Fatal("order id tidak tersimpan di payment")
		}
	}
	if len(f.Events) != 1 || f.Events[0].GatewayEventStatus != gwmodel.GatewayEventStatusProcessed {
		t.Fatalf("event log tidak processed: %+v", f.Events)
	}
}

func TestNotificationHeadersLoggedForAudit(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	payload := []byte(`{"transaction_status":"settlement"}`)
	headers := []byte(`{"User-Agent":["Veritrans"],"X-Forwarded-For":["103.10.128.1"]}`)
	if _, err := r.HandleNotification(context.Background(), notification("SPP-1-1000", "settlement"), payload, headers); err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}

	if len(f.Events) != 1 {
		t.Fatalf("events = %d, mau 1", len(f.Events))
	}
	ev := f.Events[0]
	if string(ev.GatewayEventPayload) != string(payload) {
		t.Fatalf("payload event = %s, mau %s", ev.GatewayEventPayload, payload)
	}
	if string(ev.GatewayEventHeaders) != string(headers) {
		t.Fatalf("headers event = %s, mau %s", ev.GatewayEventHeaders, headers)
	}
}

func TestDuplicateSettlementIsIdempotent(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	n := notification("SPP-1-1000", "settlement")
	if _, err := r.HandleNotification(context.Background(), n, []byte(`{}`), nil); err != nil {
		t.Fatalf("delivery pertama: %v", err)
	}
	ack, err := r.HandleNotification(context.Background(), n, []byte(`{}`), nil)
	if err != nil {
		t.Fatalf("delivery duplikat harus tetap ack: %v", err)
	}
	if ack.StatusCode != "200" {
		t.Fatalf("ack status = %s, mau 200", ack.StatusCode)
	}
	if len(f.Payments) != 1 {
		t.Fatalf("payments = %d, mau tetap 1", len(f.Payments))
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPaid {
		t.Fatalf("bill status = %q, mau paid", got)
	}
}

func TestDenyUpdatesGatewayFieldsOnly(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	if _, err := r.HandleNotification(context.Background(), notification("SPP-1-1000", "deny"), []byte(`{}`), nil); err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if len(f.Payments) != 0 {
		t.Fatalf("payments = %d, mau 0", len(f.Payments))
	}
	if got := f.Bills[1].BillStatus; got != billmodel.BillStatusPending {
		t.Fatalf("bill status = %q, mau tetap pending", got)
	}
	if f.Bills[1].BillMidtransStatus == nil || *f.Bills[1].BillMidtransStatus != "deny" {
		t.Fatal("midtrans status tidak terisi deny")
	}
}

func TestBadSignatureRejected(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	n := notification("SPP-1-1000", "settlement")
	n.SignatureKey = "bukan-signature"
	_, err := r.HandleNotification(context.Background(), n, []byte(`{}`), nil)
	if code := fiberStatus(t, err); code != fiber.StatusUnauthorized {
		t.Fatalf("code = %d, mau 401", code)
	}
	if len(f.Payments) != 0 {
		t.Fatal("payment tidak boleh tercipta dari notifikasi palsu")
	}
}

func TestUnknownOrderRejected(t *testing.T) {
	f := storetest.NewFakeLedger()
	r := NewReconciler(f, testConfig())

	_, err := r.HandleNotification(context.Background(), notification("SPP-99-1000", "settlement"), []byte(`{}`), nil)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Fatalf("code = %d, mau 404", code)
	}
	if len(f.Events) != 1 || f.Events[0].GatewayEventStatus != gwmodel.GatewayEventStatusFailed {
		t.Fatalf("order asing harus tercatat failed di log event: %+v", f.Events)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	r := NewReconciler(f, testConfig())

	_, err := r.HandleNotification(context.Background(), notification("SPP-1-1000", "refund"), []byte(`{}`), nil)
	if code := fiberStatus(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("code = %d, mau 400", code)
	}
}

func TestMissingFieldsRejected(t *testing.T) {
	f := storetest.NewFakeLedger()
	r := NewReconciler(f, testConfig())

	n := notification("SPP-1-1000", "settlement")
	n.GrossAmount = ""
	_, err := r.HandleNotification(context.Background(), n, []byte(`{}`), nil)
	if code := fiberStatus(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("code = %d, mau 400", code)
	}
}

func TestManualPaymentBeatsWebhook(t *testing.T) {
	f := storetest.NewFakeLedger()
	seedOnlineBill(f, "SPP-1-1000")
	// staf keburu mencatat manual sebelum notifikasi masuk
	f.Payments[1] = &paymodel.Payment{
		PaymentID:     1,
		PaymentBillID: 1,
		PaymentMethod: paymodel.PaymentMethodCash,
		PaymentAmount: 150_000,
		PaymentDate:   time.Now(),
	}
	f.Bills[1].BillStatus = billmodel.BillStatusPaid
	r := NewReconciler(f, testConfig())

	if _, err := r.HandleNotification(context.Background(), notification("SPP-1-1000", "settlement"), []byte(`{}`), nil); err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if len(f.Payments) != 1 {
		t.Fatalf("payments = %d, mau tetap 1", len(f.Payments))
	}
	if got := f.Payments[1].PaymentMethod; got != paymodel.PaymentMethodCash {
		t.Fatalf("payment manual tertimpa: method = %q", got)
	}
}
