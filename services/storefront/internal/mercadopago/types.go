package mercadopago

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
)

const CurrencyCLP = "CLP"

// Amount marshals as a bare JSON number, the form the preferences API expects.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

type PreferenceRequest struct {
	Items               []PreferenceItem `json:"items"`
	Payer               PreferencePayer  `json:"payer"`
	BackURLs            *domain.BackURLs `json:"back_urls,omitempty"`
	AutoReturn          string           `json:"auto_return"`
	NotificationURL     string           `json:"notification_url,omitempty"`
	ExternalReference   string           `json:"external_reference"`
	StatementDescriptor string           `json:"statement_descriptor,omitempty"`
}

type PreferenceItem struct {
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	UnitPrice  Amount `json:"unit_price"`
	CurrencyID string `json:"currency_id"`
}

type PreferencePayer struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Payment keeps the fields read by the webhook; Raw holds the full body.
type Payment struct {
	ID                domain.FlexibleID `json:"id"`
	Status            string            `json:"status"`
	StatusDetail      string            `json:"status_detail"`
	ExternalReference string            `json:"external_reference"`
	PaymentTypeID     string            `json:"payment_type_id"`
	TransactionAmount decimal.Decimal   `json:"transaction_amount"`
	Raw               json.RawMessage   `json:"-"`
}

type MerchantOrder struct {
	ID                domain.FlexibleID      `json:"id"`
	ExternalReference string                 `json:"external_reference"`
	Payments          []MerchantOrderPayment `json:"payments"`
	Raw               json.RawMessage        `json:"-"`
}

type MerchantOrderPayment struct {
	ID     domain.FlexibleID `json:"id"`
	Status string            `json:"status"`
}
