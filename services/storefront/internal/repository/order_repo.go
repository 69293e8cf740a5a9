package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vinabike/storefront/pkg/mylogger"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// invalid_text_representation, raised when the reference is not a valid order id.
const pgInvalidTextRepresentation = "22P02"

type OrderRepository interface {
	// ApplyPayment writes the payment columns of one order and, when the
	// update finalizes it, calls process_online_order in the same transaction.
	ApplyPayment(ctx context.Context, update domain.PaymentUpdate) error
}

type orderRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("repository/order_repo"),
	}
}

func (r *orderRepo) ApplyPayment(ctx context.Context, update domain.PaymentUpdate) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ApplyPayment")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", update.OrderID),
		attribute.String("payment_status", string(update.Status)),
		attribute.Bool("finalize", update.Finalize()),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Failed to begin transaction", zap.Error(err))

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)
		if err := tx.Rollback(shutdownCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Warn(shutdownCtx, r.logger, "Failed to rollback transaction", zap.Error(err))
		}
	}()

	query := `
		UPDATE online_orders
		SET payment_status = $1,
			payment_method = $2,
			payment_reference = $3,
			paid_at = $4
		WHERE id = $5
	`

	commandTag, err := tx.Exec(
		ctx,
		query,
		string(update.Status),
		update.Method,
		update.Reference,
		update.PaidAt,
		update.OrderID,
	)
	if err != nil {
		span.RecordError(err)

		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pgInvalidTextRepresentation {
			return ErrOrderNotFound
		}

		mylogger.Error(
			ctx,
			r.logger,
			"Error updating online order payment",
			zap.String("order_id", update.OrderID),
			zap.Error(err),
		)

		return fmt.Errorf("error updating online order %s: %w", update.OrderID, err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	if update.Finalize() {
		if _, err := tx.Exec(ctx, `SELECT process_online_order(p_order_id => $1)`, update.OrderID); err != nil {
			span.RecordError(err)

			mylogger.Error(
				ctx,
				r.logger,
				"process_online_order failed",
				zap.String("order_id", update.OrderID),
				zap.Error(err),
			)

			return fmt.Errorf("error processing online order %s: %w", update.OrderID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Failed to commit transaction", zap.Error(err))

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
