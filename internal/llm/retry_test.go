package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-1611/AEROCARBON/internal/llm"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	val, err := llm.Retry(context.Background(), llm.RetryConfig{MaxAttempts: 3, Base: time.Millisecond, Cap: time.Millisecond},
		func(ctx context.Context) (int, error) {
			calls++
			return 42, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 1, calls)
}

func TestRetry_RecoverableFailure(t *testing.T) {
	calls := 0
	val, err := llm.Retry(context.Background(), llm.RetryConfig{MaxAttempts: 3, Base: time.Millisecond, Cap: time.Millisecond},
		func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	notified := 0
	cfg := llm.RetryConfig{
		MaxAttempts: 3,
		Base:        time.Millisecond,
		Cap:         time.Millisecond,
		OnRetry:     func(attempt int, err error) { notified++ },
	}
	_, err := llm.Retry(context.Background(), cfg,
		func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.New("permanent")
		})

	require.Error(t, err)
	assert.Equal(t, "permanent", err.Error())
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, notified)
}

func TestRetry_ContextCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := llm.Retry(ctx, llm.RetryConfig{MaxAttempts: 5, Base: time.Hour, Cap: time.Hour},
		func(ctx context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("failing")
		})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := llm.DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Base)
	assert.Equal(t, 10*time.Second, cfg.Cap)
}
