package di

import (
	"bytes"
	"context"
	"testing"

	"character-crud-demo/backend/pkg/config"
	"character-crud-demo/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *Container {
	t.Helper()
	c, err := New(config.Load(), logger.New(logger.Config{Output: &bytes.Buffer{}}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Metrics.Shutdown(context.Background()) })
	return c
}

func TestZeroBurstDisablesRateLimiter(t *testing.T) {
	t.Setenv("RATE_LIMIT", "50")
	t.Setenv("RATE_LIMIT_BURST", "0")

	assert.False(t, newContainer(t).RateLimiter.Enabled())
}

func TestDefaultRateLimiterIsEnabled(t *testing.T) {
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	assert.True(t, newContainer(t).RateLimiter.Enabled())
}

func TestContainerStartsEmpty(t *testing.T) {
	c := newContainer(t)

	assert.Zero(t, c.Repository.Len())
	assert.Zero(t, c.CharacterService.Count())
}
