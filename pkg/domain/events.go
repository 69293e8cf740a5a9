package domain

import "time"

// PaymentStatusChangedEvent is published after an order's payment fields were
// updated from a gateway notification.
type PaymentStatusChangedEvent struct {
	EventID        string     `json:"event_id"`
	OrderID        string     `json:"order_id"`
	PaymentID      string     `json:"payment_id"`
	PaymentStatus  string     `json:"payment_status"`
	GatewayStatus  string     `json:"gateway_status"`
	PaymentMethod  string     `json:"payment_method"`
	PaidAt         *time.Time `json:"paid_at"`
	OrderFinalized bool       `json:"order_finalized"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

type EventWrapper struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

const EventPaymentStatusChanged = "PaymentStatusChanged"
