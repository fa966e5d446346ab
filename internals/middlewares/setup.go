package middlewares

import (
	"github.com/gofiber/fiber/v2"

	mwlogger "digischool_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting: recovery
// paling luar, lalu logger, lalu rate limiter). CORS dipasang per-group di
// route setup karena endpoint webhook Midtrans butuh policy berbeda.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(mwlogger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
