package dto

/* ===================== Auth ===================== */

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

/* ===================== CRUD ===================== */

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

// UpdateUserRequest: password opsional; kosong berarti tidak diganti.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Name     string `json:"name" validate:"required,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

type UserResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
