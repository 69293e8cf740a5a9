package domain

const (
	TopicPayment       = "payment"
	TopicMerchantOrder = "merchant_order"
)

// Notification is a gateway webhook call. Type and Data come from webhook
// bodies, Topic from legacy IPN deliveries.
type Notification struct {
	Type   string           `json:"type"`
	Action string           `json:"action"`
	Topic  string           `json:"topic"`
	Data   NotificationData `json:"data"`
}

type NotificationData struct {
	ID FlexibleID `json:"id"`
}

// Kind resolves the event kind. Anything other than a payment or a
// merchant order is returned as is and ignored by the processor.
func (n Notification) Kind() string {
	switch {
	case n.Type == TopicMerchantOrder || n.Topic == TopicMerchantOrder:
		return TopicMerchantOrder
	case n.Type == TopicPayment || (n.Type == "" && n.Topic == TopicPayment):
		return TopicPayment
	case n.Type != "":
		return n.Type
	default:
		return n.Topic
	}
}

// ApplyQuery fills what the body left empty from IPN query parameters
// (?topic=payment&id=123 or ?type=payment&data.id=123).
func (n *Notification) ApplyQuery(query func(key string) string) {
	if n.Type == "" {
		n.Type = query("type")
	}
	if n.Topic == "" {
		n.Topic = query("topic")
	}
	if n.Data.ID == "" {
		n.Data.ID = FlexibleID(FirstNonEmpty(query("data.id"), query("id")))
	}
}
