package handler

import (
	"errors"

	"github.com/sony/gobreaker"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
)

// mapPreferenceError renders err for the {"error": ...} envelope.
func mapPreferenceError(err error) string {
	var apiErr *mercadopago.APIError

	switch {
	case errors.Is(err, domain.ErrGatewayNotConfigured):
		return domain.ErrGatewayNotConfigured.Error()
	case errors.As(err, &apiErr):
		return "MercadoPago error: " + apiErr.Message()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "MercadoPago temporarily unavailable"
	default:
		return err.Error()
	}
}
