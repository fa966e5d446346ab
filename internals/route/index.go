package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/configs"
	periodroute "digischool_backend/internals/features/academics/academic_periods/route"
	classroute "digischool_backend/internals/features/academics/classes/route"
	studentroute "digischool_backend/internals/features/academics/students/route"
	billroute "digischool_backend/internals/features/billing/bills/route"
	gatewayroute "digischool_backend/internals/features/billing/gateway/route"
	paymentroute "digischool_backend/internals/features/billing/payments/route"
	"digischool_backend/internals/features/billing/store"
	dashboardroute "digischool_backend/internals/features/dashboard/route"
	reportroute "digischool_backend/internals/features/reports/route"
	userroute "digischool_backend/internals/features/users/route"
	"digischool_backend/internals/middlewares"
	authmw "digischool_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh endpoint aplikasi.
//
// Tiga area: /api/auth (publik + limiter login), /api/public (webhook
// Midtrans, dibuktikan lewat signature), dan /api/a (staf, JWT wajib).
func SetupRoutes(app *fiber.App, db *gorm.DB, midtransCfg configs.MidtransConfig) {
	ledger := store.NewGormLedger(db)
	gateway := gatewayroute.NewGatewayController(ledger, midtransCfg)

	// ===================== AUTH (publik) =====================
	log.Println("[INFO] Setting up Auth routes...")
	userroute.AuthRoutes(app.Group("/api"), db)

	// ===================== WEBHOOK (publik) =====================
	log.Println("[INFO] Setting up Midtrans webhook...")
	webhook := app.Group("/api/public", middlewares.WebhookCorsMiddleware())
	gatewayroute.GatewayWebhookRoutes(webhook, gateway)

	// ===================== STAF (JWT) =====================
	log.Println("[INFO] Setting up staff API group...")
	staff := app.Group("/api/a",
		middlewares.CorsMiddleware(),
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	periodroute.AcademicPeriodRoutes(staff, db, ledger)
	classroute.ClassRoutes(staff, db)
	studentroute.StudentRoutes(staff, db, ledger)
	billroute.BillRoutes(staff, db, ledger)
	paymentroute.PaymentRoutes(staff, db, ledger)
	gatewayroute.GatewayStaffRoutes(staff, gateway)
	reportroute.ReportRoutes(staff, db)
	dashboardroute.DashboardRoutes(staff, db)
	userroute.UserRoutes(staff, db)
}
