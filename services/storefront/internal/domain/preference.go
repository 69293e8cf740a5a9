package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// PreferenceInput is the checkout payload posted by the storefront.
type PreferenceInput struct {
	OrderID         string           `json:"order_id" validate:"required"`
	OrderNumber     FlexibleID       `json:"order_number"`
	Total           decimal.Decimal  `json:"total"`
	Items           []PreferenceItem `json:"items" validate:"required,min=1,dive"`
	Payer           Payer            `json:"payer"`
	BackURLs        *BackURLs        `json:"back_urls,omitempty"`
	NotificationURL string           `json:"notification_url,omitempty"`
}

type PreferenceItem struct {
	Title     string          `json:"title" validate:"required"`
	Quantity  Quantity        `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Payer is forwarded as received; the gateway collects the email at checkout
// when it is missing.
type Payer struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Quantity accepts any whole JSON number, including 2.0 and 1e1.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*q = 0
		return nil
	}

	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("quantity must be a number: %w", err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("quantity must be a whole number, got %s", d.String())
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return fmt.Errorf("quantity %s is out of range", d.String())
	}

	*q = Quantity(d.IntPart())
	return nil
}

type BackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// PreferenceResult holds the gateway response body as received.
type PreferenceResult struct {
	Body     json.RawMessage
	TestMode bool
}
