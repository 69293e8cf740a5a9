package handler

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/pkg/utils"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/service"
	"go.uber.org/zap"
)

const HeaderTestMode = "X-Mercadopago-Test-Mode"

type PreferenceHandler struct {
	service  service.PreferenceService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewPreferenceHandler(service service.PreferenceService, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service:  service,
		validate: utils.NewValidator(),
		logger:   logger,
	}
}

func (h *PreferenceHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(domain.PreferenceInput)
	if err := json.Unmarshal(c.Body(), input); err != nil {
		mylogger.Warn(
			ctx,
			h.logger,
			"failed to parse body in create preference",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		fields := utils.FormatValidationError(err)

		mylogger.Warn(
			ctx,
			h.logger,
			"invalid create preference payload",
			zap.Any("fields", fields),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "invalid request",
			"fields": fields,
		})
	}

	res, err := h.service.Create(ctx, input)
	if err != nil {
		msg := mapPreferenceError(err)

		mylogger.Warn(
			ctx,
			h.logger,
			"create preference failed",
			zap.String("order_id", input.OrderID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(HeaderTestMode, strconv.FormatBool(res.TestMode))

	return c.Status(fiber.StatusOK).Send(res.Body)
}
