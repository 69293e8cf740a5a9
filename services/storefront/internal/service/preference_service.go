package service

import (
	"context"
	"fmt"

	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const autoReturnApproved = "approved"

type PreferenceService interface {
	Create(ctx context.Context, input *domain.PreferenceInput) (*domain.PreferenceResult, error)
}

type preferenceService struct {
	settings repository.SettingsRepository
	gateway  mercadopago.Client
	currency string
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewPreferenceService(
	settings repository.SettingsRepository,
	gateway mercadopago.Client,
	currency string,
	logger *zap.Logger,
) PreferenceService {
	return &preferenceService{
		settings: settings,
		gateway:  gateway,
		currency: currency,
		logger:   logger,
		tracer:   otel.Tracer("service/preference_service"),
	}
}

func (s *preferenceService) Create(ctx context.Context, input *domain.PreferenceInput) (*domain.PreferenceResult, error) {
	ctx, span := s.tracer.Start(ctx, "PreferenceService.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", input.OrderID),
		attribute.String("order_number", input.OrderNumber.String()),
	)

	settings, err := s.settings.Get(ctx, domain.SettingMercadoPagoAccessToken, domain.SettingMercadoPagoTestMode)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error loading gateway settings: %w", err)
	}

	creds, err := settings.GatewayCredentials()
	if err != nil {
		mylogger.Warn(ctx, s.logger, "MercadoPago access token is not configured")
		return nil, err
	}

	req := s.buildRequest(input)

	body, err := s.gateway.CreatePreference(ctx, creds.AccessToken, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Payment preference created",
		zap.String("order_id", input.OrderID),
		zap.Bool("test_mode", creds.TestMode),
	)

	return &domain.PreferenceResult{Body: body, TestMode: creds.TestMode}, nil
}

func (s *preferenceService) buildRequest(input *domain.PreferenceInput) *mercadopago.PreferenceRequest {
	items := make([]mercadopago.PreferenceItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = mercadopago.PreferenceItem{
			Title:      item.Title,
			Quantity:   int(item.Quantity),
			UnitPrice:  mercadopago.Amount{Decimal: item.UnitPrice},
			CurrencyID: s.currency,
		}
	}

	req := &mercadopago.PreferenceRequest{
		Items: items,
		Payer: mercadopago.PreferencePayer{
			Email: input.Payer.Email,
			Name:  input.Payer.Name,
		},
		BackURLs:          input.BackURLs,
		AutoReturn:        autoReturnApproved,
		NotificationURL:   input.NotificationURL,
		ExternalReference: input.OrderID,
	}
	if input.OrderNumber != "" {
		req.StatementDescriptor = "Pedido " + input.OrderNumber.String()
	}

	return req
}
