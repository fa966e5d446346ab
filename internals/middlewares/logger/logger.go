// Package logger membungkus access log Fiber. Request id ikut dicetak supaya
// satu request bisa dicocokkan dengan log webhook dan log query DB.
package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "02-Jan-2006 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | reqid=${locals:reqid}\n",
	})
}
