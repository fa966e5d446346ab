package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/reports/controller"
)

func ReportRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)

	reports := r.Group("/reports")
	reports.Get("/spp", ctrl.SPPReport)
	reports.Get("/spp/export", ctrl.ExportSPPReport)
}
