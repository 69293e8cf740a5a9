package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type SettingsRepository interface {
	// Get returns the requested keys, or every setting when keys is empty.
	// Missing keys and NULL values are absent from the result.
	Get(ctx context.Context, keys ...string) (domain.Settings, error)
}

type settingsRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewSettingsRepository(pool *pgxpool.Pool, logger *zap.Logger) SettingsRepository {
	return &settingsRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/settings_repo"),
	}
}

func (r *settingsRepo) Get(ctx context.Context, keys ...string) (domain.Settings, error) {
	ctx, span := r.tracer.Start(ctx, "SettingsRepository.Get")
	defer span.End()

	span.SetAttributes(attribute.StringSlice("keys", keys))

	query := `SELECT key, value FROM website_settings`
	var args []interface{}
	if len(keys) > 0 {
		query += ` WHERE key = ANY($1)`
		args = append(args, keys)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Error selecting website settings",
			zap.Strings("keys", keys),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error selecting settings: %w", err)
	}
	defer rows.Close()

	settings := make(domain.Settings)
	for rows.Next() {
		var key string
		var value *string
		if err := rows.Scan(&key, &value); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("error scanning settings: %w", err)
		}
		if value != nil {
			settings[key] = *value
		}
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return settings, nil
}
