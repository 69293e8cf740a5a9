package service

import (
	"context"
	"encoding/json"
	"sync"

	generalDomain "github.com/vinabike/storefront/pkg/domain"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
)

type fakeSettings struct {
	values domain.Settings
	err    error
}

func (f *fakeSettings) Get(_ context.Context, keys ...string) (domain.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make(domain.Settings)
	for k, v := range f.values {
		if len(keys) == 0 {
			out[k] = v
			continue
		}
		for _, want := range keys {
			if k == want {
				out[k] = v
			}
		}
	}

	return out, nil
}

type fakeProducts struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeProducts) ListListed(context.Context) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

type fakeOrders struct {
	mu       sync.Mutex
	updates  []domain.PaymentUpdate
	finalize []string
	err      error
}

func (f *fakeOrders) ApplyPayment(_ context.Context, update domain.PaymentUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.updates = append(f.updates, update)
	if update.Finalize() {
		f.finalize = append(f.finalize, update.OrderID)
	}

	return nil
}

type fakeGateway struct {
	preference     json.RawMessage
	payments       map[string]*mercadopago.Payment
	merchantOrders map[string]*mercadopago.MerchantOrder
	err            error

	preferenceCalls []*mercadopago.PreferenceRequest
	paymentCalls    []string
	orderCalls      []string
	tokens          []string
}

func (f *fakeGateway) CreatePreference(_ context.Context, token string, req *mercadopago.PreferenceRequest) (json.RawMessage, error) {
	f.tokens = append(f.tokens, token)
	f.preferenceCalls = append(f.preferenceCalls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.preference, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, token, id string) (*mercadopago.Payment, error) {
	f.tokens = append(f.tokens, token)
	f.paymentCalls = append(f.paymentCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.payments[id]
	if !ok {
		return nil, &mercadopago.APIError{Operation: "get_payment", StatusCode: 404, Body: []byte(`{"message":"not found"}`)}
	}
	return p, nil
}

func (f *fakeGateway) GetMerchantOrder(_ context.Context, token, id string) (*mercadopago.MerchantOrder, error) {
	f.tokens = append(f.tokens, token)
	f.orderCalls = append(f.orderCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.merchantOrders[id], nil
}

type fakePublisher struct {
	events []*generalDomain.PaymentStatusChangedEvent
	err    error
}

func (f *fakePublisher) PublishPaymentStatusChanged(_ context.Context, event *generalDomain.PaymentStatusChangedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

// blockingPublisher holds every publish until release is closed or the
// context expires.
type blockingPublisher struct {
	release chan struct{}
}

func (p *blockingPublisher) PublishPaymentStatusChanged(ctx context.Context, _ *generalDomain.PaymentStatusChangedEvent) error {
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func configuredSettings() *fakeSettings {
	return &fakeSettings{values: domain.Settings{
		domain.SettingMercadoPagoAccessToken: "APP_USR-token",
		domain.SettingMercadoPagoTestMode:    "true",
	}}
}
