package route

import (
	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	"digischool_backend/internals/features/billing/gateway/controller"
	"digischool_backend/internals/features/billing/gateway/service"
	"digischool_backend/internals/features/billing/store"
)

// GatewayStaffRoutes mendaftarkan endpoint initiate di group staf.
func GatewayStaffRoutes(r fiber.Router, ctrl *controller.GatewayController) {
	r.Post("/bills/:id/pay", ctrl.InitiateTransaction)
}

// GatewayWebhookRoutes mendaftarkan webhook Midtrans di group publik
// (tanpa JWT; keaslian dibuktikan lewat signature).
func GatewayWebhookRoutes(r fiber.Router, ctrl *controller.GatewayController) {
	r.Post("/midtrans/notification", ctrl.HandleNotification)
}

// NewGatewayController merakit controller lengkap dengan client Snap asli.
func NewGatewayController(ledger store.Ledger, cfg configs.MidtransConfig) *controller.GatewayController {
	snap := service.NewMidtransSnap(cfg.ServerKey, cfg.IsProduction)
	return controller.NewGatewayController(ledger, snap, cfg)
}
