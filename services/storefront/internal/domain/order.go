package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Statuses reported by the gateway for a payment.
const (
	GatewayApproved    = "approved"
	GatewayPending     = "pending"
	GatewayAuthorized  = "authorized"
	GatewayInProcess   = "in_process"
	GatewayInMediation = "in_mediation"
	GatewayRejected    = "rejected"
	GatewayCancelled   = "cancelled"
	GatewayRefunded    = "refunded"
	GatewayChargedBack = "charged_back"
)

const PaymentMethodMercadoPago = "mercadopago"

var gatewayStatusTable = map[string]PaymentStatus{
	GatewayApproved:  PaymentPaid,
	GatewayRejected:  PaymentFailed,
	GatewayCancelled: PaymentFailed,
}

// MapGatewayStatus is total: every status missing from the table,
// including unknown ones, maps to pending.
func MapGatewayStatus(gatewayStatus string) PaymentStatus {
	if status, ok := gatewayStatusTable[gatewayStatus]; ok {
		return status
	}

	return PaymentPending
}

// PaymentUpdate carries the payment columns written to online_orders.
type PaymentUpdate struct {
	OrderID   string
	Status    PaymentStatus
	Method    string
	Reference string
	PaidAt    *time.Time
}

// NewPaymentUpdate maps gatewayStatus and sets PaidAt to now only for paid orders.
func NewPaymentUpdate(orderID, reference, gatewayStatus string, now time.Time) PaymentUpdate {
	update := PaymentUpdate{
		OrderID:   orderID,
		Status:    MapGatewayStatus(gatewayStatus),
		Method:    PaymentMethodMercadoPago,
		Reference: reference,
	}
	if update.Status == PaymentPaid {
		paidAt := now.UTC()
		update.PaidAt = &paidAt
	}

	return update
}

// Finalize reports whether process_online_order must run after the update.
func (u PaymentUpdate) Finalize() bool {
	return u.Status == PaymentPaid
}
