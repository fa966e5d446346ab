package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/store"
)

// GenerateService membuat satu tahun tagihan SPP (12 baris) untuk satu siswa.
type GenerateService struct {
	Ledger store.Ledger
}

func NewGenerateService(l store.Ledger) *GenerateService {
	return &GenerateService{Ledger: l}
}

// GenerateYearOfBills membuat 12 tagihan Juli..Juni dalam satu transaksi.
// Nominal dibekukan dari tarif tahun ajaran saat ini; perubahan tarif
// belakangan tidak menyentuh tagihan yang sudah dibuat.
//
// Error: 404 siswa/tahun ajaran tidak ada, 400 nama tahun ajaran tidak
// valid, 409 tagihan untuk pasangan (siswa, tahun ajaran) sudah pernah
// digenerate.
func (s *GenerateService) GenerateYearOfBills(ctx context.Context, studentID, periodID uint) ([]*billmodel.Bill, error) {
	period, err := s.Ledger.PeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		return nil, err
	}

	if _, err := s.Ledger.StudentByID(ctx, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return nil, err
	}

	startYear, endYear, err := ParsePeriodName(period.AcademicPeriodName)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format tahun ajaran tidak valid (harus dalam format YYYY/YYYY)")
	}

	var created []*billmodel.Bill
	txErr := s.Ledger.InTx(ctx, func(l store.Ledger) error {
		n, err := l.CountBillsForStudentPeriod(ctx, studentID, periodID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "Tagihan untuk siswa dan tahun ajaran ini sudah ada")
		}

		bills := make([]*billmodel.Bill, 0, 12)
		for _, entry := range BuildYearSchedule(startYear, endYear) {
			note := fmt.Sprintf("Tagihan SPP %s %d", entry.Month, entry.Year)
			bills = append(bills, &billmodel.Bill{
				BillStudentID: studentID,
				BillPeriodID:  periodID,
				BillMonth:     entry.Month,
				BillYear:      entry.Year,
				BillAmount:    period.AcademicPeriodMonthlyRate,
				BillStatus:    billmodel.BillStatusPending,
				BillDueDate:   entry.DueDate,
				BillNote:      &note,
			})
		}

		if err := l.CreateBills(ctx, bills); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				// generate balapan: unique (siswa, tahun ajaran, bulan) menang satu
				return fiber.NewError(fiber.StatusConflict, "Tagihan untuk siswa dan tahun ajaran ini sudah ada")
			}
			return err
		}
		created = bills
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}
