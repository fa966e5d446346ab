package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/classes/controller"
)

func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(db)

	classes := r.Group("/classes")
	classes.Get("/", ctrl.ListClasses)
	classes.Post("/", ctrl.CreateClass)
	classes.Put("/:id", ctrl.UpdateClass)
	classes.Delete("/:id", ctrl.DeleteClass)
}
