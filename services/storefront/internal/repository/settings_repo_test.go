package repository_test

import "github.com/vinabike/storefront/services/storefront/internal/domain"

func (s *RepositorySuite) TestSettingsGet() {
	token := "APP_USR-123"
	testMode := "true"
	name := "Vinabike Viña"
	s.seedSetting(domain.SettingMercadoPagoAccessToken, &token)
	s.seedSetting(domain.SettingMercadoPagoTestMode, &testMode)
	s.seedSetting(domain.SettingStoreName, &name)
	s.seedSetting(domain.SettingStoreURL, nil)

	all, err := s.Settings.Get(s.Ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(name, all[domain.SettingStoreName])
	s.NotContains(all, domain.SettingStoreURL)

	some, err := s.Settings.Get(s.Ctx, domain.SettingMercadoPagoAccessToken, domain.SettingMercadoPagoTestMode)
	s.Require().NoError(err)
	s.Len(some, 2)

	creds, err := some.GatewayCredentials()
	s.Require().NoError(err)
	s.Equal(token, creds.AccessToken)
	s.True(creds.TestMode)
}
