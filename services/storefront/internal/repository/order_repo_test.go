package repository_test

import (
	"time"

	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
)

type orderRow struct {
	Status    string
	Method    *string
	Reference *string
	PaidAt    *time.Time
}

func (s *RepositorySuite) loadOrder(id string) orderRow {
	var row orderRow
	err := s.DbPool.QueryRow(
		s.Ctx,
		`SELECT payment_status, payment_method, payment_reference, paid_at FROM online_orders WHERE id = $1`,
		id,
	).Scan(&row.Status, &row.Method, &row.Reference, &row.PaidAt)
	s.Require().NoError(err)

	return row
}

func (s *RepositorySuite) TestApplyPayment_ApprovedFinalizesOnce() {
	orderID := s.seedOrder()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	update := domain.NewPaymentUpdate(orderID, "P1", domain.GatewayApproved, now)
	s.Require().NoError(s.Orders.ApplyPayment(s.Ctx, update))

	row := s.loadOrder(orderID)
	s.Equal("paid", row.Status)
	s.Equal("mercadopago", *row.Method)
	s.Equal("P1", *row.Reference)
	s.Require().NotNil(row.PaidAt)
	s.True(now.Equal(*row.PaidAt))

	var calls int
	err := s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM processed_online_orders WHERE order_id = $1`, orderID).Scan(&calls)
	s.Require().NoError(err)
	s.Equal(1, calls)
}

func (s *RepositorySuite) TestApplyPayment_RejectedDoesNotFinalize() {
	orderID := s.seedOrder()

	update := domain.NewPaymentUpdate(orderID, "P2", domain.GatewayRejected, time.Now())
	s.Require().NoError(s.Orders.ApplyPayment(s.Ctx, update))

	row := s.loadOrder(orderID)
	s.Equal("failed", row.Status)
	s.Nil(row.PaidAt)
	s.Equal(0, s.countRows("processed_online_orders"))
}

func (s *RepositorySuite) TestApplyPayment_ClearsPaidAtWhenPending() {
	orderID := s.seedOrder()

	s.Require().NoError(s.Orders.ApplyPayment(s.Ctx, domain.NewPaymentUpdate(orderID, "P3", domain.GatewayApproved, time.Now())))
	s.Require().NoError(s.Orders.ApplyPayment(s.Ctx, domain.NewPaymentUpdate(orderID, "P3", domain.GatewayInProcess, time.Now())))

	row := s.loadOrder(orderID)
	s.Equal("pending", row.Status)
	s.Nil(row.PaidAt)
}

func (s *RepositorySuite) TestApplyPayment_UnknownOrder() {
	update := domain.NewPaymentUpdate("7b0f6f5e-2c1a-4c52-9d0e-2f4f8a1f9e11", "P4", domain.GatewayApproved, time.Now())
	s.ErrorIs(s.Orders.ApplyPayment(s.Ctx, update), repository.ErrOrderNotFound)
	s.Equal(0, s.countRows("processed_online_orders"))
}

func (s *RepositorySuite) TestApplyPayment_MalformedReference() {
	update := domain.NewPaymentUpdate("O1", "P5", domain.GatewayApproved, time.Now())
	s.ErrorIs(s.Orders.ApplyPayment(s.Ctx, update), repository.ErrOrderNotFound)
}

func (s *RepositorySuite) TestApplyPayment_FinalizeFailureRollsBack() {
	orderID := s.seedOrder()
	flag := "1"
	s.seedSetting("fail_process_online_order", &flag)

	err := s.Orders.ApplyPayment(s.Ctx, domain.NewPaymentUpdate(orderID, "P6", domain.GatewayApproved, time.Now()))
	s.Require().Error(err)
	s.NotErrorIs(err, repository.ErrOrderNotFound)

	row := s.loadOrder(orderID)
	s.Equal("pending", row.Status)
	s.Nil(row.Reference)
	s.Equal(1, s.countRows("online_orders"))
}
