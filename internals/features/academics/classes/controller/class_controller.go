package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/classes/dto"
	"digischool_backend/internals/features/academics/classes/model"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// GET /api/a/classes
func (ctrl *ClassController) ListClasses(c *fiber.Ctx) error {
	var classes []model.Class
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("class_level ASC").
		Order("class_name ASC").
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kelas")
	}
	return helper.Success(c, "Daftar kelas berhasil diambil", classes)
}

// POST /api/a/classes
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	class := model.Class{ClassName: req.Name, ClassLevel: req.Level}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&class).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kelas berhasil dibuat", class)
}

// PUT /api/a/classes/:id
func (ctrl *ClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class model.Class
	if err := ctrl.DB.WithContext(c.UserContext()).First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	class.ClassName = req.Name
	class.ClassLevel = req.Level
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&class).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	return helper.Success(c, "Kelas berhasil diperbarui", class)
}

// DELETE /api/a/classes/:id
func (ctrl *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var n int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Table("student").Where("student_class_id = ?", id).Count(&n).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa siswa kelas")
	}
	if n > 0 {
		return helper.Error(c, fiber.StatusConflict, "Kelas masih memiliki siswa, tidak bisa dihapus")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.Class{}, "class_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.Success(c, "Kelas berhasil dihapus", nil)
}
