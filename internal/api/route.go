package api

import (
	v1 "github.com/Behyna/wallet-service/internal/api/v1"
	"github.com/Behyna/wallet-service/internal/api/v1/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixV1 = "/api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	wallet := app.Group(prefixV1+"wallet", middleware.CallerIdentity())
	wallet.Post("/account", handler.EnsureAccount)
	wallet.Get("/balance", handler.GetBalance)
	wallet.Post("/transfer", handler.Transfer)
	wallet.Get("/transactions", handler.ListHistory)
}
