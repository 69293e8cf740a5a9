package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/service"
	"go.uber.org/zap"
)

type FeedHandler struct {
	service service.FeedService
	logger  *zap.Logger
}

func NewFeedHandler(service service.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service: service,
		logger:  logger,
	}
}

func (h *FeedHandler) GoogleMerchant(c *fiber.Ctx) error {
	out, err := h.service.Render(c.UserContext())
	if err != nil {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Error generating feed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")

	return c.Status(fiber.StatusOK).Send(out)
}
