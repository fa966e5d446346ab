package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/academics/academic_periods/controller"
	"digischool_backend/internals/features/billing/store"
)

func AcademicPeriodRoutes(r fiber.Router, db *gorm.DB, ledger store.Ledger) {
	ctrl := controller.NewAcademicPeriodController(db, ledger)

	periods := r.Group("/academic-periods")
	periods.Get("/", ctrl.ListPeriods)
	periods.Post("/", ctrl.CreatePeriod)
	periods.Get("/:id", ctrl.GetPeriod)
	periods.Put("/:id", ctrl.UpdatePeriod)
	periods.Delete("/:id", ctrl.DeletePeriod)
}
