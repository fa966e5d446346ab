package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digischool_backend/internals/configs"
	"digischool_backend/internals/features/users/dto"
	"digischool_backend/internals/features/users/model"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

const tokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:   u.UserID,
		Username: u.UserUsername,
		Name:     u.UserName,
		Role:     u.UserRole,
	}
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "user_username = ?", strings.TrimSpace(req.Username)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pesan sama dengan salah password supaya username tidak bisa ditebak
			return helper.Error(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	claims := jwt.MapClaims{
		"id":       user.UserID,
		"username": user.UserUsername,
		"role":     user.UserRole,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "auth-token",
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return helper.Success(c, "Login berhasil", dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "auth-token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return helper.Success(c, "Logout berhasil", nil)
}
