package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/constants"
	"digischool_backend/internals/features/billing/bills/dto"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	"digischool_backend/internals/features/billing/bills/service"
	"digischool_backend/internals/features/billing/store"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type BillController struct {
	DB       *gorm.DB
	Ledger   store.Ledger
	Generate *service.GenerateService
}

func NewBillController(db *gorm.DB, ledger store.Ledger) *BillController {
	return &BillController{
		DB:       db,
		Ledger:   ledger,
		Generate: service.NewGenerateService(ledger),
	}
}

/* =======================================================
   GENERATE 12 TAGIHAN
======================================================= */

// POST /api/a/bills/generate
func (ctrl *BillController) GenerateYearOfBills(c *fiber.Ctx) error {
	var req dto.GenerateBillsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	bills, err := ctrl.Generate.GenerateYearOfBills(c.UserContext(), req.StudentID, req.PeriodID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated,
		fmt.Sprintf("%d tagihan berhasil dibuat", len(bills)), bills)
}

/* =======================================================
   UPDATE / DELETE
======================================================= */

// PUT /api/a/bills/:id
func (ctrl *BillController) UpdateBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	var req dto.UpdateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !constants.IsValidMonth(req.Month) {
		return helper.Error(c, fiber.StatusBadRequest, "Nama bulan tidak dikenali: "+req.Month)
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format jatuh tempo tidak valid (harus YYYY-MM-DD)")
	}

	txErr := ctrl.Ledger.InTx(c.UserContext(), func(l store.Ledger) error {
		bill, err := l.BillByIDLocked(c.UserContext(), uint(id))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
			}
			return err
		}

		p, err := l.PaymentByBillID(c.UserContext(), bill.BillID)
		if err != nil {
			return err
		}
		if p != nil {
			// admin override: tagihan yang sudah dibayar tetap bisa dikoreksi,
			// tapi tinggalkan jejak di log
			log.Printf("[BILL] ⚠️ tagihan %d diedit padahal sudah punya pembayaran %d", bill.BillID, p.PaymentID)
		}

		if _, err := l.StudentByID(c.UserContext(), req.StudentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}
		if _, err := l.PeriodByID(c.UserContext(), req.PeriodID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
			}
			return err
		}

		bill.BillStudentID = req.StudentID
		bill.BillPeriodID = req.PeriodID
		bill.BillMonth = req.Month
		bill.BillYear = req.Year
		bill.BillAmount = req.Amount
		bill.BillStatus = req.Status
		bill.BillDueDate = dueDate
		bill.BillNote = req.Note
		if err := l.SaveBill(c.UserContext(), bill); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fiber.NewError(fiber.StatusConflict, "Tagihan bulan itu sudah ada untuk siswa ini")
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	updated, err := ctrl.Ledger.BillByID(c.UserContext(), uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Tagihan berhasil diperbarui", updated)
}

// DELETE /api/a/bills/:id
func (ctrl *BillController) DeleteBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	txErr := ctrl.Ledger.InTx(c.UserContext(), func(l store.Ledger) error {
		if _, err := l.BillByIDLocked(c.UserContext(), uint(id)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
			}
			return err
		}
		p, err := l.PaymentByBillID(c.UserContext(), uint(id))
		if err != nil {
			return err
		}
		if p != nil {
			return fiber.NewError(fiber.StatusConflict, "Tagihan ini sudah memiliki pembayaran, hapus pembayarannya dulu")
		}
		return l.DeleteBill(c.UserContext(), uint(id))
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.Success(c, "Tagihan berhasil dihapus", nil)
}

/* =======================================================
   LIST & DETAIL
======================================================= */

// BillListItem = baris list tagihan + identitas siswa supaya frontend tidak
// perlu query tambahan.
type BillListItem struct {
	BillID      uint      `json:"bill_id"`
	StudentID   uint      `json:"student_id"`
	StudentNIS  string    `json:"student_nis"`
	StudentName string    `json:"student_name"`
	ClassName   string    `json:"class_name"`
	PeriodID    uint      `json:"period_id"`
	PeriodName  string    `json:"period_name"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
}

// monthOrderCase menyusun CASE untuk sorting kalender tahun ajaran
// (Juli dulu, Juni terakhir) karena bulan disimpan sebagai label.
func monthOrderCase(col string) string {
	var sb strings.Builder
	sb.WriteString("CASE ")
	sb.WriteString(col)
	for i, m := range constants.SchoolYearMonths {
		fmt.Fprintf(&sb, " WHEN '%s' THEN %d", m, i+1)
	}
	sb.WriteString(" ELSE 99 END")
	return sb.String()
}

// GET /api/a/bills?period_id=&class_id=&student_id=&status=&month=&year=&page=&per_page=
func (ctrl *BillController) ListBills(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.UserContext()).
		Table("bill AS b").
		Joins("JOIN student s ON s.student_id = b.bill_student_id").
		Joins("LEFT JOIN class k ON k.class_id = s.student_class_id").
		Joins("JOIN academic_period ap ON ap.academic_period_id = b.bill_period_id")

	if v := c.QueryInt("period_id"); v > 0 {
		base = base.Where("b.bill_period_id = ?", v)
	}
	if v := c.QueryInt("class_id"); v > 0 {
		base = base.Where("s.student_class_id = ?", v)
	}
	if v := c.QueryInt("student_id"); v > 0 {
		base = base.Where("b.bill_student_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		base = base.Where("b.bill_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("month")); v != "" {
		base = base.Where("b.bill_month = ?", v)
	}
	if v := c.QueryInt("year"); v > 0 {
		base = base.Where("b.bill_year = ?", v)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung tagihan")
	}

	var rows []BillListItem
	err := base.
		Select(`b.bill_id, b.bill_student_id AS student_id, s.student_nis, s.student_name,
			COALESCE(k.class_name, '') AS class_name,
			b.bill_period_id AS period_id, ap.academic_period_name AS period_name,
			b.bill_month AS month, b.bill_year AS year, b.bill_amount AS amount,
			b.bill_status AS status, b.bill_due_date AS due_date`).
		Order("b.bill_year ASC").
		Order(monthOrderCase("b.bill_month") + " ASC").
		Order("s.student_name ASC").
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar tagihan")
	}

	return helper.Success(c, "Daftar tagihan berhasil diambil", fiber.Map{
		"items": rows,
		"meta":  helper.BuildMeta(total, params),
	})
}

// GET /api/a/bills/:id
func (ctrl *BillController) GetBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}
	var bill billmodel.Bill
	if err := ctrl.DB.WithContext(c.UserContext()).First(&bill, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Tagihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil tagihan")
	}
	return helper.Success(c, "Detail tagihan berhasil diambil", bill)
}
