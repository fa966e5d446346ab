package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/academic_periods/dto"
	"digischool_backend/internals/features/academics/academic_periods/model"
	billservice "digischool_backend/internals/features/billing/bills/service"
	"digischool_backend/internals/features/billing/store"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type AcademicPeriodController struct {
	DB     *gorm.DB
	Ledger store.Ledger
}

func NewAcademicPeriodController(db *gorm.DB, ledger store.Ledger) *AcademicPeriodController {
	return &AcademicPeriodController{DB: db, Ledger: ledger}
}

// GET /api/a/academic-periods
func (ctrl *AcademicPeriodController) ListPeriods(c *fiber.Ctx) error {
	var periods []model.AcademicPeriod
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("academic_period_name DESC").
		Find(&periods).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar tahun ajaran")
	}
	return helper.Success(c, "Daftar tahun ajaran berhasil diambil", periods)
}

// GET /api/a/academic-periods/:id
func (ctrl *AcademicPeriodController) GetPeriod(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tahun ajaran tidak valid")
	}
	var period model.AcademicPeriod
	if err := ctrl.DB.WithContext(c.UserContext()).First(&period, "academic_period_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil tahun ajaran")
	}
	return helper.Success(c, "Detail tahun ajaran berhasil diambil", period)
}

// POST /api/a/academic-periods
func (ctrl *AcademicPeriodController) CreatePeriod(c *fiber.Ctx) error {
	var req dto.AcademicPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if _, _, err := billservice.ParsePeriodName(name); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tahun ajaran tidak valid (harus YYYY/YYYY)")
	}

	period := model.AcademicPeriod{
		AcademicPeriodName:        name,
		AcademicPeriodMonthlyRate: req.MonthlyRate,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Tahun ajaran "+name+" sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat tahun ajaran")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tahun ajaran berhasil dibuat", period)
}

// PUT /api/a/academic-periods/:id
//
// Perubahan tarif hanya berlaku untuk generate berikutnya; tagihan yang
// sudah ada nominalnya tidak ikut berubah.
func (ctrl *AcademicPeriodController) UpdatePeriod(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tahun ajaran tidak valid")
	}

	var req dto.AcademicPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if _, _, err := billservice.ParsePeriodName(name); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tahun ajaran tidak valid (harus YYYY/YYYY)")
	}

	var period model.AcademicPeriod
	if err := ctrl.DB.WithContext(c.UserContext()).First(&period, "academic_period_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil tahun ajaran")
	}

	period.AcademicPeriodName = name
	period.AcademicPeriodMonthlyRate = req.MonthlyRate
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Tahun ajaran "+name+" sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui tahun ajaran")
	}
	return helper.Success(c, "Tahun ajaran berhasil diperbarui", period)
}

// DELETE /api/a/academic-periods/:id
func (ctrl *AcademicPeriodController) DeletePeriod(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tahun ajaran tidak valid")
	}

	n, err := ctrl.Ledger.CountBillsForPeriod(c.UserContext(), uint(id))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa tagihan tahun ajaran")
	}
	if n > 0 {
		return helper.Error(c, fiber.StatusConflict, "Tahun ajaran masih memiliki tagihan, tidak bisa dihapus")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.AcademicPeriod{}, "academic_period_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus tahun ajaran")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	return helper.Success(c, "Tahun ajaran berhasil dihapus", nil)
}
