package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/billing/payments/dto"
	"digischool_backend/internals/features/billing/payments/service"
	"digischool_backend/internals/features/billing/store"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB, ledger store.Ledger) *PaymentController {
	return &PaymentController{DB: db, Service: service.NewPaymentService(ledger)}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

/* =======================================================
   CREATE / UPDATE / DELETE
======================================================= */

// POST /api/a/payments
func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal tidak valid (harus YYYY-MM-DD)")
	}

	p, err := ctrl.Service.Record(c.UserContext(), service.RecordInput{
		BillID:   req.BillID,
		Date:     date,
		Method:   req.Method,
		Amount:   req.Amount,
		ProofURL: req.ProofURL,
		Note:     req.Note,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pembayaran berhasil dicatat", p)
}

// PUT /api/a/payments/:id
func (ctrl *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal tidak valid (harus YYYY-MM-DD)")
	}

	p, err := ctrl.Service.Update(c.UserContext(), service.UpdateInput{
		PaymentID: uint(id),
		BillID:    req.BillID,
		Date:      date,
		Method:    req.Method,
		Amount:    req.Amount,
		ProofURL:  req.ProofURL,
		Note:      req.Note,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Pembayaran berhasil diperbarui", p)
}

// DELETE /api/a/payments/:id
func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}
	if err := ctrl.Service.Delete(c.UserContext(), uint(id)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Pembayaran berhasil dihapus", nil)
}

/* =======================================================
   LIST
======================================================= */

// PaymentListItem = baris pembayaran + konteks tagihan/siswa.
type PaymentListItem struct {
	PaymentID   uint      `json:"payment_id"`
	BillID      uint      `json:"bill_id"`
	StudentID   uint      `json:"student_id"`
	StudentNIS  string    `json:"student_nis"`
	StudentName string    `json:"student_name"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	Date        time.Time `json:"date"`
	Method      string    `json:"method"`
	Amount      int64     `json:"amount"`
	ProofURL    *string   `json:"proof_url,omitempty"`
	Note        *string   `json:"note,omitempty"`
}

// GET /api/a/payments?bill_id=&student_id=&method=&date_from=&date_to=&page=&per_page=
func (ctrl *PaymentController) ListPayments(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.UserContext()).
		Table("payment AS p").
		Joins("JOIN bill b ON b.bill_id = p.payment_bill_id").
		Joins("JOIN student s ON s.student_id = b.bill_student_id")

	if v := c.QueryInt("bill_id"); v > 0 {
		base = base.Where("p.payment_bill_id = ?", v)
	}
	if v := c.QueryInt("student_id"); v > 0 {
		base = base.Where("b.bill_student_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("method")); v != "" {
		base = base.Where("p.payment_method = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		// status tagihan pemilik, bukan status pembayaran
		base = base.Where("b.bill_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		if d, err := parseDate(v); err == nil {
			base = base.Where("p.payment_date >= ?", d)
		}
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		if d, err := parseDate(v); err == nil {
			base = base.Where("p.payment_date <= ?", d)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}

	var rows []PaymentListItem
	err := base.
		Select(`p.payment_id, p.payment_bill_id AS bill_id,
			b.bill_student_id AS student_id, s.student_nis, s.student_name,
			b.bill_month AS month, b.bill_year AS year,
			p.payment_date AS date, p.payment_method AS method,
			p.payment_amount AS amount, p.payment_proof_url AS proof_url, p.payment_note AS note`).
		Order("p.payment_date DESC").
		Order("p.payment_id DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pembayaran")
	}

	return helper.Success(c, "Daftar pembayaran berhasil diambil", fiber.Map{
		"items": rows,
		"meta":  helper.BuildMeta(total, params),
	})
}
