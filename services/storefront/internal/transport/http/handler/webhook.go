package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/service"
	"go.uber.org/zap"
)

const (
	webhookOK    = "ok"
	webhookError = "error"
)

type WebhookHandler struct {
	service service.WebhookService
	logger  *zap.Logger
}

func NewWebhookHandler(service service.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger,
	}
}

// MercadoPago answers every delivery with plain text. Only malformed bodies
// and internal failures are not acknowledged.
func (h *WebhookHandler) MercadoPago(c *fiber.Ctx) error {
	ctx := c.UserContext()
	body := c.Body()

	mylogger.Info(
		ctx,
		h.logger,
		"Webhook received",
		mylogger.RawJSON("payload", body),
		zap.String("query", string(c.Request().URI().QueryString())),
	)

	var n domain.Notification
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &n); err != nil {
			mylogger.Warn(ctx, h.logger, "Webhook body is not valid JSON", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).SendString(webhookError)
		}
	}
	n.ApplyQuery(func(key string) string { return c.Query(key) })

	if err := h.service.Handle(ctx, n); err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"Webhook error",
			zap.String("kind", n.Kind()),
			zap.String("id", n.Data.ID.String()),
			mylogger.RawJSON("payload", body),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).SendString(webhookError)
	}

	return c.Status(fiber.StatusOK).SendString(webhookOK)
}
