package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"digischool_backend/internals/configs"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/gateway/dto"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store"
)

// status transaksi Midtrans yang dikenali webhook
var knownTransactionStatuses = map[string]bool{
	"capture":    true,
	"settlement": true,
	"pending":    true,
	"deny":       true,
	"cancel":     true,
	"expire":     true,
}

const midtransTimeLayout = "2006-01-02 15:04:05"

// Reconciler menerapkan notifikasi Midtrans ke Bill + Payment ledger.
// Pemrosesan idempoten: delivery yang sama boleh datang berkali-kali dan
// hasil akhirnya tetap satu Payment.
type Reconciler struct {
	Ledger store.Ledger
	Config configs.MidtransConfig
}

func NewReconciler(l store.Ledger, cfg configs.MidtransConfig) *Reconciler {
	return &Reconciler{Ledger: l, Config: cfg}
}

// HandleNotification memverifikasi lalu menerapkan satu notifikasi.
// rawPayload dan rawHeaders ikut disimpan mentah di log event untuk audit.
//
// Urutan pemeriksaan: field wajib (400) → signature (401) → status dikenal
// (400) → korelasi order id (404). Delivery valid selalu dibalas ack 200,
// termasuk duplikat.
func (r *Reconciler) HandleNotification(ctx context.Context, n dto.MidtransNotification, rawPayload, rawHeaders []byte) (*dto.NotificationAck, error) {
	if n.OrderID == "" || n.StatusCode == "" || n.GrossAmount == "" || n.SignatureKey == "" || n.TransactionStatus == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payload notifikasi tidak lengkap")
	}

	if !VerifySignature(n.SignatureKey, n.OrderID, n.StatusCode, n.GrossAmount, r.Config.ServerKey) {
		log.Printf("[WEBHOOK] ❌ signature tidak cocok untuk order %s", n.OrderID)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Signature tidak valid")
	}

	if !knownTransactionStatuses[n.TransactionStatus] {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status transaksi tidak dikenali: "+n.TransactionStatus)
	}

	bill, err := r.Ledger.BillByOrderID(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logEvent(ctx, n, rawPayload, rawHeaders, nil, gwmodel.GatewayEventStatusFailed, strPtr("order id tidak terkorelasi ke tagihan manapun"))
			return nil, fiber.NewError(fiber.StatusNotFound, "Order tidak dikenali")
		}
		return nil, err
	}

	duplicate := r.logEvent(ctx, n, rawPayload, rawHeaders, &bill.BillID, gwmodel.GatewayEventStatusReceived, nil)
	if duplicate {
		log.Printf("[WEBHOOK] ♻️ delivery duplikat order %s status %s, diproses idempoten", n.OrderID, n.TransactionStatus)
	}

	applyErr := r.Ledger.InTx(ctx, func(l store.Ledger) error {
		b, err := l.BillByOrderIDLocked(ctx, n.OrderID)
		if err != nil {
			return err
		}
		switch n.TransactionStatus {
		case "capture", "settlement":
			return r.applySuccess(ctx, l, b, n)
		default:
			return r.applyNonFinal(ctx, l, b, n)
		}
	})
	if applyErr != nil {
		r.markEvent(ctx, n, gwmodel.GatewayEventStatusFailed, strPtr(applyErr.Error()))
		return nil, applyErr
	}

	r.markEvent(ctx, n, gwmodel.GatewayEventStatusProcessed, nil)
	return ackFor(n.TransactionStatus), nil
}

// applySuccess menandai bill lunas dan membuat Payment gateway bila belum ada.
func (r *Reconciler) applySuccess(ctx context.Context, l store.Ledger, b *billmodel.Bill, n dto.MidtransNotification) error {
	setGatewayFields(b, n)

	existing, err := l.PaymentByBillID(ctx, b.BillID)
	if err != nil {
		return err
	}
	if existing != nil {
		// sudah pernah diterapkan (atau staf keburu catat manual);
		// cukup pastikan status bill konsisten
		b.BillStatus = billmodel.BillStatusPaid
		return l.SaveBill(ctx, b)
	}

	amount := parseGrossAmount(n.GrossAmount)
	if amount != b.BillAmount {
		log.Printf("[WEBHOOK] ⚠️ gross_amount %s ≠ nominal tagihan %d (order %s)", n.GrossAmount, b.BillAmount, n.OrderID)
	}

	p := &paymodel.Payment{
		PaymentBillID:                b.BillID,
		PaymentDate:                  paymentDate(n),
		PaymentMethod:                paymodel.PaymentMethodGateway,
		PaymentAmount:                amount,
		PaymentMidtransOrderID:       &n.OrderID,
		PaymentMidtransTransactionID: strPtrIf(n.TransactionID),
		PaymentMidtransPaymentType:   strPtrIf(n.PaymentType),
	}
	if err := l.CreatePayment(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// kalah balapan dengan delivery kembar; pemenang sudah mencatat
			b.BillStatus = billmodel.BillStatusPaid
			return l.SaveBill(ctx, b)
		}
		return err
	}

	b.BillStatus = billmodel.BillStatusPaid
	return l.SaveBill(ctx, b)
}

// applyNonFinal hanya memperbarui jejak status gateway; bill_status tidak
// disentuh supaya tagihan tetap bisa dibayar ulang setelah expire/cancel.
func (r *Reconciler) applyNonFinal(ctx context.Context, l store.Ledger, b *billmodel.Bill, n dto.MidtransNotification) error {
	setGatewayFields(b, n)
	return l.SaveBill(ctx, b)
}

/* ===================== Helpers ===================== */

func setGatewayFields(b *billmodel.Bill, n dto.MidtransNotification) {
	b.BillMidtransStatus = &n.TransactionStatus
	b.BillMidtransTransactionID = strPtrIf(n.TransactionID)
	b.BillMidtransPaymentType = strPtrIf(n.PaymentType)
	if t, ok := parseMidtransTime(n.TransactionTime); ok {
		b.BillMidtransTransactionAt = &t
	}
	if t, ok := parseMidtransTime(n.SettlementTime); ok {
		b.BillMidtransSettlementAt = &t
	}
}

// logEvent mencatat delivery ke log audit; true bila delivery identik sudah
// pernah tercatat.
func (r *Reconciler) logEvent(ctx context.Context, n dto.MidtransNotification, rawPayload, rawHeaders []byte, billID *uint, status string, errMsg *string) bool {
	ev := &gwmodel.GatewayEvent{
		GatewayEventBillID:         billID,
		GatewayEventOrderID:        n.OrderID,
		GatewayEventType:           n.TransactionStatus,
		GatewayEventTransactionID:  strPtrIf(n.TransactionID),
		GatewayEventSignature:      strPtrIf(n.SignatureKey),
		GatewayEventPayload:        datatypes.JSON(rawPayload),
		GatewayEventIdempotencyKey: uuid.NewString(),
		GatewayEventStatus:         status,
		GatewayEventError:          errMsg,
	}
	if len(rawHeaders) > 0 {
		ev.GatewayEventHeaders = datatypes.JSON(rawHeaders)
	}
	if err := r.Ledger.CreateEvent(ctx, ev); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return true
		}
		log.Printf("[WEBHOOK] ⚠️ gagal mencatat event order %s: %v", n.OrderID, err)
	}
	return false
}

func (r *Reconciler) markEvent(ctx context.Context, n dto.MidtransNotification, status string, errMsg *string) {
	if err := r.Ledger.MarkEvent(ctx, n.OrderID, n.TransactionStatus, status, errMsg); err != nil {
		log.Printf("[WEBHOOK] ⚠️ gagal update event order %s: %v", n.OrderID, err)
	}
}

func ackFor(transactionStatus string) *dto.NotificationAck {
	switch transactionStatus {
	case "capture", "settlement":
		ack := dto.Ack("Pembayaran berhasil dicatat")
		return &ack
	default:
		ack := dto.Ack("Status transaksi dicatat: " + transactionStatus)
		return &ack
	}
}

// parseGrossAmount menerima format Midtrans "150000.00" dan mengembalikan
// rupiah bulat; gagal parse jatuh ke 0 dan ketahuan lewat log selisih.
func parseGrossAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseMidtransTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(midtransTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func paymentDate(n dto.MidtransNotification) time.Time {
	if t, ok := parseMidtransTime(n.SettlementTime); ok {
		return t
	}
	if t, ok := parseMidtransTime(n.TransactionTime); ok {
		return t
	}
	return time.Now()
}

func strPtr(s string) *string { return &s }

func strPtrIf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
