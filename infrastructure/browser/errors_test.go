package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"login_automation/config"
	"login_automation/infrastructure/logging"
)

func TestCallTimeout(t *testing.T) {
	t.Run("no deadline keeps default", func(t *testing.T) {
		d, err := callTimeout(context.Background(), 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, d)
	})

	t.Run("deadline shortens default", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		d, err := callTimeout(ctx, 30*time.Second)
		require.NoError(t, err)
		assert.LessOrEqual(t, d, time.Second)
		assert.Greater(t, d, time.Duration(0))
	})

	t.Run("cancelled context fails fast", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := callTimeout(ctx, 30*time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestErrorClasses(t *testing.T) {
	cause := errors.New("waiting for locator")
	err := interactionErr("click %s: %w", "#missing", cause)

	assert.True(t, InteractionError.Has(err))
	assert.False(t, LaunchError.Has(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "#missing")
}

func TestIsAlreadyClosed(t *testing.T) {
	assert.True(t, isAlreadyClosed(playwright.ErrTargetClosed))
	assert.True(t, isAlreadyClosed(fmt.Errorf("close page: %w", playwright.ErrTargetClosed)))

	// Only the sentinel counts; other failures that mention closing must surface.
	assert.False(t, isAlreadyClosed(errors.New("target closed")))
	assert.False(t, isAlreadyClosed(errors.New("connection closed by peer")))
	assert.False(t, isAlreadyClosed(errors.New("connection refused")))
	assert.False(t, isAlreadyClosed(nil))
}

func TestLaunch_UnknownEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = "lynx"

	session, err := Launch(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Nil(t, session)
	assert.True(t, LaunchError.Has(err))
}

func TestLaunch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Launch(ctx, config.Default(), logging.Discard())
	require.Error(t, err)
	assert.True(t, LaunchError.Has(err))
}

func TestFindChromeDriver_ConfiguredPathMissing(t *testing.T) {
	_, err := findChromeDriver("/nonexistent/chromedriver")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/chromedriver")
}
