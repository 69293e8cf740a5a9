package domain

import "errors"

const (
	SettingStoreName              = "store_name"
	SettingStoreURL               = "store_url"
	SettingMercadoPagoAccessToken = "mercadopago_access_token"
	SettingMercadoPagoTestMode    = "mercadopago_test_mode"
)

var ErrGatewayNotConfigured = errors.New("MercadoPago not configured")

type Settings map[string]string

// Get returns the value stored under key, or fallback when it is missing or empty.
func (s Settings) Get(key, fallback string) string {
	return FirstNonEmpty(s[key], fallback)
}

type GatewayCredentials struct {
	AccessToken string
	TestMode    bool
}

func (s Settings) GatewayCredentials() (GatewayCredentials, error) {
	creds := GatewayCredentials{
		AccessToken: s[SettingMercadoPagoAccessToken],
		TestMode:    s[SettingMercadoPagoTestMode] == "true",
	}
	if creds.AccessToken == "" {
		return creds, ErrGatewayNotConfigured
	}

	return creds, nil
}
