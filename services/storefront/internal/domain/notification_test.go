package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	cases := map[string]string{
		`"P1"`:           "P1",
		`1319`:           "1319",
		`12345678901234`: "12345678901234",
		`null`:           "",
		`""`:             "",
	}

	for in, want := range cases {
		var id FlexibleID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id.String(), in)
	}

	var id FlexibleID
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))

	out, err := json.Marshal(FlexibleID("77"))
	require.NoError(t, err)
	assert.Equal(t, `"77"`, string(out))
}

func TestNotificationKind(t *testing.T) {
	cases := []struct {
		name string
		n    Notification
		want string
	}{
		{"payment type", Notification{Type: "payment"}, TopicPayment},
		{"merchant order type", Notification{Type: "merchant_order"}, TopicMerchantOrder},
		{"merchant order topic", Notification{Topic: "merchant_order"}, TopicMerchantOrder},
		{"topic wins for merchant order", Notification{Type: "payment", Topic: "merchant_order"}, TopicMerchantOrder},
		{"payment topic without type", Notification{Topic: "payment"}, TopicPayment},
		{"other type", Notification{Type: "subscription_preapproval", Topic: "payment"}, "subscription_preapproval"},
		{"empty", Notification{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.n.Kind())
		})
	}
}

func TestNotificationApplyQuery(t *testing.T) {
	query := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	var ipn Notification
	ipn.ApplyQuery(query(map[string]string{"topic": "payment", "id": "555"}))
	assert.Equal(t, TopicPayment, ipn.Kind())
	assert.Equal(t, "555", ipn.Data.ID.String())

	var hook Notification
	hook.ApplyQuery(query(map[string]string{"type": "payment", "data.id": "556", "id": "999"}))
	assert.Equal(t, "556", hook.Data.ID.String())

	body := Notification{Type: "payment", Data: NotificationData{ID: "1"}}
	body.ApplyQuery(query(map[string]string{"type": "merchant_order", "data.id": "2"}))
	assert.Equal(t, "payment", body.Type)
	assert.Equal(t, "1", body.Data.ID.String())
}

func TestNotificationUnmarshal(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"action":"payment.created","type":"payment","data":{"id":"123"}}`), &n))
	assert.Equal(t, "payment.created", n.Action)
	assert.Equal(t, "123", n.Data.ID.String())
}
