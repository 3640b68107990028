package jito

import (
	"context"
	"errors"
	"testing"
	"time"

	jitorpc "github.com/jito-labs/jito-go-rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTipAccount(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.True(t, IsTipAccount(GetRandomTipAccountLocal()))
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, []string{MainnetBlockEngine}, c.endpoints)
	assert.Equal(t, uint(3), c.maxTries)

	multi := NewClientWithEndpoints(nil, "")
	assert.Equal(t, MainnetBlockEngines, multi.endpoints)
}

func TestRateLimitDetection(t *testing.T) {
	assert.True(t, isRateLimitError(errors.New("429 Too Many Requests")))
	assert.True(t, isRateLimitError(errors.New("Rate limit exceeded")))
	assert.True(t, isRateLimitError(errors.New("network congested")))
	assert.False(t, isRateLimitError(errors.New("bundle rejected")))
	assert.False(t, isRateLimitError(nil))
}

func TestReadRetriesOnlyRateLimits(t *testing.T) {
	c := NewClientWithEndpoints([]string{"http://a", "http://b"}, "").WithRetries(4, time.Millisecond)

	calls := 0
	err := c.read(context.Background(), "test", func(*jitorpc.JitoJsonRpcClient) error {
		calls++
		return errors.New("429")
	})
	require.Error(t, err)
	assert.Equal(t, 4, calls)

	calls = 0
	err = c.read(context.Background(), "test", func(*jitorpc.JitoJsonRpcClient) error {
		calls++
		return errors.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSendRejectsEmptyInput(t *testing.T) {
	c := NewClient("", "")
	_, err := c.SendBundle(context.Background(), nil)
	assert.Error(t, err)
	_, err = c.SendTransactionWithBundleID(context.Background(), nil)
	assert.Error(t, err)
}
