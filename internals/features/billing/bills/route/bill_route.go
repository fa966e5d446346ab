package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/billing/bills/controller"
	"digischool_backend/internals/features/billing/store"
)

// BillRoutes mendaftarkan endpoint tagihan di group staf (sudah ber-JWT).
func BillRoutes(r fiber.Router, db *gorm.DB, ledger store.Ledger) {
	ctrl := controller.NewBillController(db, ledger)

	bills := r.Group("/bills")
	bills.Get("/", ctrl.ListBills)
	bills.Post("/generate", ctrl.GenerateYearOfBills)
	bills.Get("/:id", ctrl.GetBill)
	bills.Put("/:id", ctrl.UpdateBill)
	bills.Delete("/:id", ctrl.DeleteBill)
}
