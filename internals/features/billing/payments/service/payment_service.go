package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	billmodel "digischool_backend/internals/features/billing/bills/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store"
)

// PaymentService mengelola pembayaran manual (kas / transfer). Setiap mutasi
// payment selalu menulis status bill pasangannya dalam transaksi yang sama.
type PaymentService struct {
	Ledger store.Ledger
}

func NewPaymentService(l store.Ledger) *PaymentService {
	return &PaymentService{Ledger: l}
}

// RecordInput = data pembayaran manual dari staf.
type RecordInput struct {
	BillID   uint
	Date     time.Time
	Method   string
	Amount   int64
	ProofURL *string
	Note     *string
}

// UpdateInput memperbarui pembayaran yang sudah tercatat. BillID boleh
// berbeda dari sebelumnya (salah input tagihan); status kedua bill ikut
// dikoreksi atomik.
type UpdateInput struct {
	PaymentID uint
	BillID    uint
	Date      time.Time
	Method    string
	Amount    int64
	ProofURL  *string
	Note      *string
}

// Record mencatat pembayaran manual dan menandai bill lunas, atomik.
//
// Error: 404 bill tidak ada, 409 bill sudah punya pembayaran (termasuk
// kalah balapan di unique index payment_bill_id).
func (s *PaymentService) Record(ctx context.Context, in RecordInput) (*paymodel.Payment, error) {
	var created *paymodel.Payment
	err := s.Ledger.InTx(ctx, func(l store.Ledger) error {
		bill, err := l.BillByIDLocked(ctx, in.BillID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
			}
			return err
		}

		existing, err := l.PaymentByBillID(ctx, in.BillID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fiber.NewError(fiber.StatusConflict, "Tagihan ini sudah memiliki pembayaran")
		}

		p := &paymodel.Payment{
			PaymentBillID:   in.BillID,
			PaymentDate:     in.Date,
			PaymentMethod:   in.Method,
			PaymentAmount:   in.Amount,
			PaymentProofURL: in.ProofURL,
			PaymentNote:     in.Note,
		}
		if err := l.CreatePayment(ctx, p); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fiber.NewError(fiber.StatusConflict, "Tagihan ini sudah memiliki pembayaran")
			}
			return err
		}

		bill.BillStatus = billmodel.BillStatusPaid
		if err := l.SaveBill(ctx, bill); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update memperbarui pembayaran. Jika tagihan tujuan berubah, bill lama
// dikembalikan ke pending dan bill baru ditandai lunas dalam satu transaksi.
func (s *PaymentService) Update(ctx context.Context, in UpdateInput) (*paymodel.Payment, error) {
	var updated *paymodel.Payment
	err := s.Ledger.InTx(ctx, func(l store.Ledger) error {
		p, err := l.PaymentByID(ctx, in.PaymentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pembayaran tidak ditemukan")
			}
			return err
		}

		oldBillID := p.PaymentBillID
		if in.BillID != oldBillID {
			newBill, err := l.BillByIDLocked(ctx, in.BillID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Tagihan tujuan tidak ditemukan")
				}
				return err
			}
			other, err := l.PaymentByBillID(ctx, in.BillID)
			if err != nil {
				return err
			}
			if other != nil {
				return fiber.NewError(fiber.StatusConflict, "Tagihan tujuan sudah memiliki pembayaran")
			}

			oldBill, err := l.BillByIDLocked(ctx, oldBillID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if oldBill != nil {
				oldBill.BillStatus = billmodel.BillStatusPending
				if err := l.SaveBill(ctx, oldBill); err != nil {
					return err
				}
			}
			newBill.BillStatus = billmodel.BillStatusPaid
			if err := l.SaveBill(ctx, newBill); err != nil {
				return err
			}
		}

		p.PaymentBillID = in.BillID
		p.PaymentDate = in.Date
		p.PaymentMethod = in.Method
		p.PaymentAmount = in.Amount
		p.PaymentProofURL = in.ProofURL
		p.PaymentNote = in.Note
		if err := l.SavePayment(ctx, p); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fiber.NewError(fiber.StatusConflict, "Tagihan tujuan sudah memiliki pembayaran")
			}
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete menghapus pembayaran dan mengembalikan bill pasangannya ke pending.
func (s *PaymentService) Delete(ctx context.Context, paymentID uint) error {
	return s.Ledger.InTx(ctx, func(l store.Ledger) error {
		p, err := l.PaymentByID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pembayaran tidak ditemukan")
			}
			return err
		}

		bill, err := l.BillByIDLocked(ctx, p.PaymentBillID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := l.DeletePayment(ctx, paymentID); err != nil {
			return err
		}
		if bill != nil {
			bill.BillStatus = billmodel.BillStatusPending
			if err := l.SaveBill(ctx, bill); err != nil {
				return err
			}
		}
		return nil
	})
}
