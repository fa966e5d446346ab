package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digischool_backend/internals/features/users/dto"
	"digischool_backend/internals/features/users/model"
	helper "digischool_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/a/users
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	var users []model.User
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("user_name ASC").Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar user")
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return helper.Success(c, "Daftar user berhasil diambil", out)
}

// POST /api/a/users
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.User{
		UserUsername: strings.TrimSpace(req.Username),
		UserPassword: string(hash),
		UserName:     strings.TrimSpace(req.Name),
		UserRole:     req.Role,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Username "+user.UserUsername+" sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User berhasil dibuat", toUserResponse(user))
}

// PUT /api/a/users/:id
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	user.UserUsername = strings.TrimSpace(req.Username)
	user.UserName = strings.TrimSpace(req.Name)
	user.UserRole = req.Role
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		user.UserPassword = string(hash)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Username "+user.UserUsername+" sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	return helper.Success(c, "User berhasil diperbarui", toUserResponse(user))
}

// DELETE /api/a/users/:id
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.User{}, "user_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.Success(c, "User berhasil dihapus", nil)
}
