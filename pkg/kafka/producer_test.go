package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerConfig_SendsOnce(t *testing.T) {
	config := newProducerConfig(2 * time.Second)

	require.NoError(t, config.Validate())
	assert.Equal(t, 0, config.Producer.Retry.Max)
	assert.Equal(t, 0, config.Metadata.Retry.Max)
	assert.Equal(t, sarama.WaitForAll, config.Producer.RequiredAcks)
	assert.True(t, config.Producer.Return.Successes)
	assert.Equal(t, 2*time.Second, config.Net.DialTimeout)
	assert.Equal(t, 2*time.Second, config.Net.ReadTimeout)
	assert.Equal(t, 2*time.Second, config.Net.WriteTimeout)
	assert.Equal(t, 2*time.Second, config.Producer.Timeout)
}

func TestNewProducerConfig_ZeroTimeoutKeepsDefaults(t *testing.T) {
	config := newProducerConfig(0)
	defaults := sarama.NewConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, defaults.Net.DialTimeout, config.Net.DialTimeout)
	assert.Equal(t, defaults.Producer.Timeout, config.Producer.Timeout)
	assert.Equal(t, 0, config.Producer.Retry.Max)
}
