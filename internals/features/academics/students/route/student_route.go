package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/students/controller"
	"digischool_backend/internals/features/billing/store"
)

func StudentRoutes(r fiber.Router, db *gorm.DB, ledger store.Ledger) {
	ctrl := controller.NewStudentController(db, ledger)

	students := r.Group("/students")
	students.Get("/", ctrl.ListStudents)
	students.Post("/", ctrl.CreateStudent)
	students.Get("/:id", ctrl.GetStudent)
	students.Put("/:id", ctrl.UpdateStudent)
	students.Delete("/:id", ctrl.DeleteStudent)
}
