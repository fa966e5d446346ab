package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	"digischool_backend/internals/features/billing/store"
)

// InitiateService memulai pembayaran online: membuat transaksi Snap lalu
// menyimpan order id di bill supaya notifikasi bisa dikorelasikan balik.
type InitiateService struct {
	Ledger store.Ledger
	Snap   SnapGateway
	Config configs.MidtransConfig

	// now bisa di-override di test untuk order id deterministik
	now func() time.Time
}

func NewInitiateService(l store.Ledger, g SnapGateway, cfg configs.MidtransConfig) *InitiateService {
	return &InitiateService{Ledger: l, Snap: g, Config: cfg, now: time.Now}
}

// InitiateResult dikirim balik ke frontend untuk redirect ke halaman Snap.
type InitiateResult struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// buildOrderID menyusun "SPP-{billID}-{unixMillis}"; timestamp membuat order
// id unik walau tagihan yang sama di-initiate ulang setelah expire.
func buildOrderID(billID uint, at time.Time) string {
	return fmt.Sprintf("SPP-%d-%d", billID, at.UnixMilli())
}

// Initiate membuat transaksi Snap untuk satu tagihan.
//
// Error: 500 kredensial Midtrans belum beres, 404 bill tidak ada, 409 bill
// sudah lunas, 502 Midtrans menolak / tidak bisa dihubungi.
func (s *InitiateService) Initiate(ctx context.Context, billID uint) (*InitiateResult, error) {
	if err := s.Config.Validate(); err != nil {
		log.Printf("[GATEWAY] ❌ konfigurasi Midtrans tidak valid: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Konfigurasi pembayaran belum lengkap, hubungi admin")
	}

	bill, err := s.Ledger.BillByID(ctx, billID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
		}
		return nil, err
	}
	if bill.IsPaid() {
		return nil, fiber.NewError(fiber.StatusConflict, "Tagihan ini sudah lunas")
	}

	student, err := s.Ledger.StudentByID(ctx, bill.BillStudentID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	var studentName, studentEmail, studentPhone string
	if student != nil {
		studentName = student.StudentName
		if student.StudentEmail != nil {
			studentEmail = *student.StudentEmail
		}
		if student.StudentPhone != nil {
			studentPhone = *student.StudentPhone
		}
	}

	orderID := buildOrderID(bill.BillID, s.now())
	desc := fmt.Sprintf("SPP %s %d", bill.BillMonth, bill.BillYear)

	res, err := s.Snap.CreateTransaction(ctx, TransactionParams{
		OrderID:      orderID,
		GrossAmount:  bill.BillAmount,
		StudentName:  studentName,
		StudentEmail: studentEmail,
		StudentPhone: studentPhone,
		Description:  desc,
	})
	if err != nil {
		if errors.Is(err, ErrGatewayUnauthorized) {
			log.Printf("[GATEWAY] ❌ server key ditolak Midtrans (order %s)", orderID)
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Konfigurasi pembayaran belum lengkap, hubungi admin")
		}
		log.Printf("[GATEWAY] ❌ gagal membuat transaksi Snap (order %s): %v", orderID, err)
		return nil, fiber.NewError(fiber.StatusBadGateway, "Gateway pembayaran sedang bermasalah, coba lagi")
	}

	// simpan korelasi sebelum balikan ke frontend; kalau gagal simpan,
	// notifikasi nanti tidak akan ketemu bill-nya
	txErr := s.Ledger.InTx(ctx, func(l store.Ledger) error {
		b, err := l.BillByIDLocked(ctx, bill.BillID)
		if err != nil {
			return err
		}
		now := s.now()
		b.BillMidtransOrderID = &orderID
		status := "pending"
		b.BillMidtransStatus = &status
		b.BillMidtransTransactionAt = &now
		return l.SaveBill(ctx, b)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &InitiateResult{OrderID: orderID, Token: res.Token, RedirectURL: res.RedirectURL}, nil
}
