package service

import (
	"context"
	"fmt"

	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/feed"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type FeedService interface {
	Render(ctx context.Context) ([]byte, error)
}

// StoreDefaults are used when website_settings has no value for a key.
type StoreDefaults struct {
	Name            string
	URL             string
	Brand           string
	Description     string
	ProductCategory string
	Currency        string
}

type feedService struct {
	products repository.ProductRepository
	settings repository.SettingsRepository
	store    StoreDefaults
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewFeedService(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	store StoreDefaults,
	logger *zap.Logger,
) FeedService {
	return &feedService{
		products: products,
		settings: settings,
		store:    store,
		logger:   logger,
		tracer:   otel.Tracer("service/feed_service"),
	}
}

func (s *feedService) Render(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "FeedService.Render")
	defer span.End()

	products, err := s.products.ListListed(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error loading products: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	ch := feed.Channel{
		Title:       settings.Get(domain.SettingStoreName, s.store.Name),
		Link:        settings.Get(domain.SettingStoreURL, s.store.URL),
		Description: s.store.Description,
	}
	defaults := feed.Defaults{
		Brand:           s.store.Brand,
		ProductCategory: s.store.ProductCategory,
		Currency:        s.store.Currency,
	}

	out := feed.Render(ch, products, defaults)

	mylogger.Info(
		ctx,
		s.logger,
		"Merchant feed rendered",
		zap.Int("products", len(products)),
		zap.Int("bytes", len(out)),
	)

	return out, nil
}
