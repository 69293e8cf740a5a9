package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	generalDomain "github.com/vinabike/storefront/pkg/domain"
	"github.com/vinabike/storefront/pkg/metrics"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type WebhookService interface {
	// Handle returns nil for every notification that must be acknowledged,
	// including ignored ones.
	Handle(ctx context.Context, n domain.Notification) error
}

type EventPublisher interface {
	PublishPaymentStatusChanged(ctx context.Context, event *generalDomain.PaymentStatusChangedEvent) error
}

type webhookService struct {
	settings  repository.SettingsRepository
	orders    repository.OrderRepository
	gateway   mercadopago.Client
	publisher EventPublisher
	// publishWait caps how long an acknowledgment waits for the event.
	publishWait time.Duration
	now         func() time.Time
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewWebhookService builds the processor. publisher may be nil; publishWait
// of zero leaves publishing unbounded.
func NewWebhookService(
	settings repository.SettingsRepository,
	orders repository.OrderRepository,
	gateway mercadopago.Client,
	publisher EventPublisher,
	publishWait time.Duration,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		settings:    settings,
		orders:      orders,
		gateway:     gateway,
		publisher:   publisher,
		publishWait: publishWait,
		now:         time.Now,
		logger:      logger,
		tracer:      otel.Tracer("service/webhook_service"),
	}
}

func (s *webhookService) Handle(ctx context.Context, n domain.Notification) error {
	ctx, span := s.tracer.Start(ctx, "WebhookService.Handle")
	defer span.End()

	kind := n.Kind()
	id := n.Data.ID.String()
	span.SetAttributes(
		attribute.String("webhook.kind", kind),
		attribute.String("webhook.action", n.Action),
		attribute.String("webhook.id", id),
	)

	if (kind != domain.TopicPayment && kind != domain.TopicMerchantOrder) || id == "" {
		mylogger.Info(
			ctx,
			s.logger,
			"Webhook ignored",
			zap.String("kind", kind),
			zap.String("id", id),
		)
		metrics.WebhookEvents.WithLabelValues(kind, metrics.OutcomeIgnored).Inc()

		return nil
	}

	err := s.handle(ctx, kind, id)
	if err != nil {
		span.RecordError(err)
		metrics.WebhookEvents.WithLabelValues(kind, metrics.OutcomeError).Inc()

		return err
	}

	metrics.WebhookEvents.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	return nil
}

func (s *webhookService) handle(ctx context.Context, kind, id string) error {
	settings, err := s.settings.Get(ctx, domain.SettingMercadoPagoAccessToken, domain.SettingMercadoPagoTestMode)
	if err != nil {
		return fmt.Errorf("error loading gateway settings: %w", err)
	}

	creds, err := settings.GatewayCredentials()
	if err != nil {
		mylogger.Error(ctx, s.logger, "No MercadoPago access token found in website_settings")
		return err
	}

	if kind == domain.TopicMerchantOrder {
		order, err := s.gateway.GetMerchantOrder(ctx, creds.AccessToken, id)
		if err != nil {
			return fmt.Errorf("error fetching merchant order %s: %w", id, err)
		}

		if len(order.Payments) == 0 {
			mylogger.Info(ctx, s.logger, "Merchant order has no payments yet", zap.String("merchant_order_id", id))
			return nil
		}

		paymentID := order.Payments[0].ID.String()
		if paymentID == "" {
			mylogger.Warn(ctx, s.logger, "Merchant order payment has no id", zap.String("merchant_order_id", id))
			return nil
		}
		id = paymentID
	}

	return s.processPayment(ctx, creds.AccessToken, id)
}

func (s *webhookService) processPayment(ctx context.Context, accessToken, paymentID string) error {
	ctx, span := s.tracer.Start(ctx, "WebhookService.processPayment")
	defer span.End()

	payment, err := s.gateway.GetPayment(ctx, accessToken, paymentID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to fetch payment details: %w", err)
	}

	update := domain.NewPaymentUpdate(payment.ExternalReference, paymentID, payment.Status, s.now())

	span.SetAttributes(
		attribute.String("order_id", update.OrderID),
		attribute.String("gateway_status", payment.Status),
		attribute.String("payment_status", string(update.Status)),
	)

	if update.OrderID == "" {
		mylogger.Warn(ctx, s.logger, "Payment has no external reference", zap.String("payment_id", paymentID))
		return nil
	}

	if err := s.orders.ApplyPayment(ctx, update); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			mylogger.Warn(
				ctx,
				s.logger,
				"No online order matches the payment reference",
				zap.String("payment_id", paymentID),
				zap.String("order_id", update.OrderID),
			)

			return nil
		}

		span.RecordError(err)
		return err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Online order payment updated",
		zap.String("order_id", update.OrderID),
		zap.String("payment_id", paymentID),
		zap.String("gateway_status", payment.Status),
		zap.String("payment_status", string(update.Status)),
		zap.Bool("finalized", update.Finalize()),
	)

	s.publish(ctx, update, payment.Status)

	return nil
}

func (s *webhookService) publish(ctx context.Context, update domain.PaymentUpdate, gatewayStatus string) {
	if s.publisher == nil {
		return
	}

	event := &generalDomain.PaymentStatusChangedEvent{
		EventID:        uuid.NewString(),
		OrderID:        update.OrderID,
		PaymentID:      update.Reference,
		PaymentStatus:  string(update.Status),
		GatewayStatus:  gatewayStatus,
		PaymentMethod:  update.Method,
		PaidAt:         update.PaidAt,
		OrderFinalized: update.Finalize(),
		OccurredAt:     s.now().UTC(),
	}

	if s.publishWait <= 0 {
		s.logPublishError(ctx, update.OrderID, s.publisher.PublishPaymentStatusChanged(ctx, event))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishWait)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.publisher.PublishPaymentStatusChanged(ctx, event)
	}()

	select {
	case err := <-done:
		s.logPublishError(ctx, update.OrderID, err)
	case <-ctx.Done():
		s.logPublishError(ctx, update.OrderID, fmt.Errorf("payment event not confirmed: %w", ctx.Err()))
	}
}

func (s *webhookService) logPublishError(ctx context.Context, orderID string, err error) {
	if err == nil {
		return
	}

	mylogger.Warn(
		ctx,
		s.logger,
		"Failed to publish payment status event",
		zap.String("order_id", orderID),
		zap.Error(err),
	)
}
