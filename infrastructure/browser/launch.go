package browser

import (
	"context"

	"github.com/sirupsen/logrus"

	"login_automation/config"
	"login_automation/domain/interfaces"
)

// Engine names, as accepted in BROWSER_ENGINE.
const (
	EnginePlaywright = config.EnginePlaywright
	EngineSelenium   = config.EngineSelenium
)

// Screenshotter is implemented by pages that can capture the viewport.
type Screenshotter interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// Launch opens one browser session with the engine selected in cfg.
// Launch does not retry; a failure is returned as a LaunchError.
func Launch(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, LaunchError.Wrap(err)
	}

	switch cfg.Engine {
	case EnginePlaywright, "":
		return NewPlaywrightSession(PlaywrightOptions{
			Headless: cfg.Headless,
			SlowMo:   cfg.SlowMo,
			Timeout:  cfg.BrowserTimeout,
		}, logger)
	case EngineSelenium:
		return NewSeleniumSession(SeleniumOptions{
			Headless:         cfg.Headless,
			Timeout:          cfg.BrowserTimeout,
			ChromeDriverPath: cfg.ChromeDriverPath,
			ChromeDriverPort: cfg.ChromeDriverPort,
		}, logger)
	default:
		return nil, LaunchError.New("unknown browser engine %q", cfg.Engine)
	}
}
