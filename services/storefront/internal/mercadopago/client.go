package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vinabike/storefront/pkg/metrics"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/pkg/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	opCreatePreference = "create_preference"
	opGetPayment       = "get_payment"
	opGetMerchantOrder = "get_merchant_order"
)

// Client talks to the MercadoPago REST API. The access token is passed per
// call because it is read from store settings on every request.
type Client interface {
	CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (json.RawMessage, error)
	GetPayment(ctx context.Context, accessToken, id string) (*Payment, error)
	GetMerchantOrder(ctx context.Context, accessToken, id string) (*MerchantOrder, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker utils.BreakerSettings
}

type client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) Client {
	breaker := cfg.Breaker
	breaker.Name = "MercadoPago"
	breaker.IsSuccessful = func(err error) bool {
		return err == nil || isRejection(err)
	}

	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb:     utils.NewBreaker(breaker, logger),
		tracer: otel.Tracer("client/mercadopago"),
		logger: logger,
	}
}

func (c *client) CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "MercadoPago.CreatePreference")
	defer span.End()

	span.SetAttributes(attribute.String("external_reference", req.ExternalReference))

	payload, err := json.Marshal(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error marshalling preference: %w", err)
	}

	body, err := c.do(ctx, opCreatePreference, http.MethodPost, "/checkout/preferences", accessToken, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create preference failed")
		return nil, err
	}

	return body, nil
}

func (c *client) GetPayment(ctx context.Context, accessToken, id string) (*Payment, error) {
	ctx, span := c.tracer.Start(ctx, "MercadoPago.GetPayment")
	defer span.End()

	span.SetAttributes(attribute.String("payment_id", id))

	body, err := c.do(ctx, opGetPayment, http.MethodGet, "/v1/payments/"+url.PathEscape(id), accessToken, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get payment failed")
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error decoding payment %s: %w", id, err)
	}
	payment.Raw = body

	return &payment, nil
}

func (c *client) GetMerchantOrder(ctx context.Context, accessToken, id string) (*MerchantOrder, error) {
	ctx, span := c.tracer.Start(ctx, "MercadoPago.GetMerchantOrder")
	defer span.End()

	span.SetAttributes(attribute.String("merchant_order_id", id))

	body, err := c.do(ctx, opGetMerchantOrder, http.MethodGet, "/merchant_orders/"+url.PathEscape(id), accessToken, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get merchant order failed")
		return nil, err
	}

	var order MerchantOrder
	if err := json.Unmarshal(body, &order); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error decoding merchant order %s: %w", id, err)
	}
	order.Raw = body

	return &order, nil
}

// do sends one request through the breaker. It never retries.
func (c *client) do(ctx context.Context, op, method, path, accessToken string, payload []byte) ([]byte, error) {
	body, err := utils.ExecuteWithBreaker(c.cb, func() ([]byte, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("error building request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("mercadopago %s: %w", op, err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("mercadopago %s: error reading body: %w", op, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{Operation: op, StatusCode: resp.StatusCode, Body: respBody}
		}

		return respBody, nil
	})
	if err != nil {
		metrics.GatewayCalls.WithLabelValues(op, metrics.OutcomeError).Inc()
		mylogger.Error(
			ctx,
			c.logger,
			"MercadoPago API error",
			zap.String("operation", op),
			zap.Error(err),
		)

		return nil, err
	}

	metrics.GatewayCalls.WithLabelValues(op, metrics.OutcomeOK).Inc()
	mylogger.Info(
		ctx,
		c.logger,
		"MercadoPago API response",
		zap.String("operation", op),
		mylogger.RawJSON("response", body),
	)

	return body, nil
}
