package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/features/billing/payments/controller"
	"digischool_backend/internals/features/billing/store"
)

func PaymentRoutes(r fiber.Router, db *gorm.DB, ledger store.Ledger) {
	ctrl := controller.NewPaymentController(db, ledger)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.ListPayments)
	payments.Post("/", ctrl.CreatePayment)
	payments.Put("/:id", ctrl.UpdatePayment)
	payments.Delete("/:id", ctrl.DeletePayment)
}
