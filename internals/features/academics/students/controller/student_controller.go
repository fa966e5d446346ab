package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/students/dto"
	"digischool_backend/internals/features/academics/students/model"
	"digischool_backend/internals/features/billing/store"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type StudentController struct {
	DB     *gorm.DB
	Ledger store.Ledger
}

func NewStudentController(db *gorm.DB, ledger store.Ledger) *StudentController {
	return &StudentController{DB: db, Ledger: ledger}
}

func applyRequest(s *model.Student, req dto.StudentRequest) error {
	s.StudentNIS = strings.TrimSpace(req.NIS)
	s.StudentName = strings.TrimSpace(req.Name)
	s.StudentGender = req.Gender
	s.StudentAddress = req.Address
	s.StudentPhone = req.Phone
	s.StudentEmail = req.Email
	s.StudentClassID = req.ClassID

	s.StudentBirthDate = nil
	if req.BirthDate != nil && *req.BirthDate != "" {
		d, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return err
		}
		s.StudentBirthDate = &d
	}
	return nil
}

// StudentListItem = baris siswa + nama kelas untuk tabel admin.
type StudentListItem struct {
	model.Student
	ClassName string `json:"class_name"`
}

// GET /api/a/students?class_id=&search=&page=&per_page=
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.UserContext()).
		Table("student AS s").
		Joins("LEFT JOIN class k ON k.class_id = s.student_class_id")

	if v := c.QueryInt("class_id"); v > 0 {
		base = base.Where("s.student_class_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + v + "%"
		base = base.Where("s.student_name ILIKE ? OR s.student_nis ILIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var rows []StudentListItem
	err := base.
		Select("s.*, COALESCE(k.class_name, '') AS class_name").
		Order("s.student_name ASC").
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar siswa")
	}

	return helper.Success(c, "Daftar siswa berhasil diambil", fiber.Map{
		"items": rows,
		"meta":  helper.BuildMeta(total, params),
	})
}

// GET /api/a/students/:id
func (ctrl *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	var s model.Student
	if err := ctrl.DB.WithContext(c.UserContext()).First(&s, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.Success(c, "Detail siswa berhasil diambil", s)
}

// POST /api/a/students
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var s model.Student
	if err := applyRequest(&s, req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal lahir tidak valid (harus YYYY-MM-DD)")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "NIS "+s.StudentNIS+" sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat siswa")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Siswa berhasil dibuat", s)
}

// PUT /api/a/students/:id
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var s model.Student
	if err := ctrl.DB.WithContext(c.UserContext()).First(&s, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	if err := applyRequest(&s, req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal lahir tidak valid (harus YYYY-MM-DD)")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "NIS "+s.StudentNIS+" sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	return helper.Success(c, "Siswa berhasil diperbarui", s)
}

// DELETE /api/a/students/:id
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	n, err := ctrl.Ledger.CountBillsForStudent(c.UserContext(), uint(id))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa tagihan siswa")
	}
	if n > 0 {
		return helper.Error(c, fiber.StatusConflict, "Siswa masih memiliki tagihan, tidak bisa dihapus")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.Student{}, "student_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus siswa")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.Success(c, "Siswa berhasil dihapus", nil)
}
