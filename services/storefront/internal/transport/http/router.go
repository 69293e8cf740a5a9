package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vinabike/storefront/pkg/metrics"
	"github.com/vinabike/storefront/services/storefront/internal/transport/http/handler"
	"github.com/vinabike/storefront/services/storefront/internal/transport/http/middleware"
)

var corsAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

type Handlers struct {
	Feed       *handler.FeedHandler
	Preference *handler.PreferenceHandler
	Webhook    *handler.WebhookHandler
}

type LimiterConfig struct {
	Max        int
	Expiration time.Duration
}

func NewApp(serviceName string, timeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               serviceName,
		ReadTimeout:           timeout,
		WriteTimeout:          timeout,
		DisableStartupMessage: true,
	})
}

func RegisterRoutes(app *fiber.App, h *Handlers, lim LimiterConfig) {
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: strings.Join(corsAllowHeaders, ", "),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("Storefront service is alive!")
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Get("/google-merchant-feed", h.Feed.GoogleMerchant)

	app.Post("/mercadopago-create-preference", limiter.New(limiter.Config{
		Max:        lim.Max,
		Expiration: lim.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Try again later.",
			})
		},
	}), h.Preference.Create)

	app.Post("/mercadopago-webhook", h.Webhook.MercadoPago)
}
