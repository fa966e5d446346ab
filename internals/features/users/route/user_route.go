package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/users/controller"
	"digischool_backend/internals/middlewares"
)

// AuthRoutes = endpoint publik (login/logout) dengan limiter khusus login.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := r.Group("/auth", middlewares.CorsMiddleware())
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
}

// UserRoutes = CRUD user untuk group staf ber-JWT.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := r.Group("/users")
	users.Get("/", ctrl.ListUsers)
	users.Post("/", ctrl.CreateUser)
	users.Put("/:id", ctrl.UpdateUser)
	users.Delete("/:id", ctrl.DeleteUser)
}
