package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	generalDomain "github.com/vinabike/storefront/pkg/domain"
	"github.com/vinabike/storefront/pkg/kafka"
	"github.com/vinabike/storefront/pkg/testsuite"
	"github.com/vinabike/storefront/services/storefront/internal/domain"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
	kafkaTransport "github.com/vinabike/storefront/services/storefront/internal/transport/kafka"
	"go.uber.org/zap"
)

const testPaymentTopic = "payment_events_test"

type IntegrationTestSuite struct {
	testsuite.BaseSuite

	producer kafka.Producer
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.BaseSuite.SetupInfrastructure("../repository/testdata/migrations")
	s.BaseSuite.StartKafka()

	s.createTopic(testPaymentTopic)

	var err error
	s.producer, err = kafka.NewProducer(s.KafkaBrokers, 10*time.Second, zap.NewNop())
	s.Require().NoError(err, "failed to create kafka producer")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.Require().NoError(s.producer.Close())
	}
	s.BaseSuite.TearDownInfrastructure()
}

// createTopic waits for a partition leader, the producer sends once without
// refreshing metadata.
func (s *IntegrationTestSuite) createTopic(topic string) {
	admin, err := sarama.NewClusterAdmin(s.KafkaBrokers, sarama.NewConfig())
	s.Require().NoError(err)
	defer admin.Close()

	err = admin.CreateTopic(topic, &sarama.TopicDetail{NumPartitions: 1, ReplicationFactor: 1}, false)
	if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
		s.Require().NoError(err)
	}

	client, err := sarama.NewClient(s.KafkaBrokers, sarama.NewConfig())
	s.Require().NoError(err)
	defer client.Close()

	s.Require().Eventually(func() bool {
		if err := client.RefreshMetadata(topic); err != nil {
			return false
		}
		_, err := client.Leader(topic, 0)
		return err == nil
	}, 30*time.Second, 500*time.Millisecond)
}

func (s *IntegrationTestSuite) SetupTest() {
	s.BaseSuite.TruncateTable("online_orders")
	s.BaseSuite.TruncateTable("processed_online_orders")
	s.BaseSuite.TruncateTable("website_settings")
	s.BaseSuite.FlushRedis()
}

func (s *IntegrationTestSuite) TestCachedFeed_ServesFromRedis() {
	products := &fakeProducts{products: []domain.Product{
		{ID: "p1", Name: "Cadena", Price: decimal.NewFromInt(12990), StockQuantity: 2},
	}}
	next := NewFeedService(products, &fakeSettings{}, testStore, zap.NewNop())
	cached := NewCachedFeedService(next, s.Redis, time.Minute, zap.NewNop())

	first, err := cached.Render(s.Ctx)
	s.Require().NoError(err)
	second, err := cached.Render(s.Ctx)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, products.calls)

	ttl, err := s.Redis.TTL(s.Ctx, feedCacheKey).Result()
	s.Require().NoError(err)
	s.Positive(ttl)

	s.BaseSuite.FlushRedis()
	_, err = cached.Render(s.Ctx)
	s.Require().NoError(err)
	s.Equal(2, products.calls)
}

func (s *IntegrationTestSuite) TestWebhook_ApprovedPaymentEndToEnd() {
	logger := zap.NewNop()

	_, err := s.DbPool.Exec(s.Ctx, `INSERT INTO website_settings (key, value) VALUES ('mercadopago_access_token', 'APP_USR-it')`)
	s.Require().NoError(err)

	var orderID string
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `INSERT INTO online_orders DEFAULT VALUES RETURNING id::text`).Scan(&orderID))

	gateway := &fakeGateway{payments: map[string]*mercadopago.Payment{
		"1319": {ID: "1319", Status: "approved", ExternalReference: orderID},
	}}

	svc := NewWebhookService(
		repository.NewSettingsRepository(s.DbPool, logger),
		repository.NewOrderRepository(s.DbPool, logger),
		gateway,
		kafkaTransport.NewPublisher(s.producer, testPaymentTopic),
		10*time.Second,
		logger,
	)

	n := domain.Notification{Type: domain.TopicPayment, Data: domain.NotificationData{ID: "1319"}}
	s.Require().NoError(svc.Handle(s.Ctx, n))

	var status, reference string
	err = s.DbPool.QueryRow(s.Ctx, `SELECT payment_status, payment_reference FROM online_orders WHERE id = $1`, orderID).
		Scan(&status, &reference)
	s.Require().NoError(err)
	s.Equal("paid", status)
	s.Equal("1319", reference)

	var processed int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM processed_online_orders`).Scan(&processed))
	s.Equal(1, processed)

	consumer, err := sarama.NewConsumer(s.KafkaBrokers, sarama.NewConfig())
	s.Require().NoError(err)
	defer consumer.Close()

	pc, err := consumer.ConsumePartition(testPaymentTopic, 0, sarama.OffsetOldest)
	s.Require().NoError(err)
	defer pc.Close()

	select {
	case msg := <-pc.Messages():
		s.Equal(orderID, string(msg.Key))

		var wrapper struct {
			Event   string                                  `json:"event"`
			Payload generalDomain.PaymentStatusChangedEvent `json:"payload"`
		}
		s.Require().NoError(json.Unmarshal(msg.Value, &wrapper))
		s.Equal(generalDomain.EventPaymentStatusChanged, wrapper.Event)
		s.Equal("paid", wrapper.Payload.PaymentStatus)
		s.True(wrapper.Payload.OrderFinalized)
	case <-time.After(10 * time.Second):
		s.Fail("payment event was not published")
	}
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration suite needs docker")
	}
	suite.Run(t, new(IntegrationTestSuite))
}
