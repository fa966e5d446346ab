package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/dashboard/controller"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	r.Get("/dashboard", ctrl.Summary)
}
