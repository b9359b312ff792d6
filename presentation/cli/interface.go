// Package cli is the command line front end: it runs the scenario catalog
// against a browser, lists it, and serves the replica site.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"login_automation/application/fixture"
	"login_automation/application/scenarios"
	"login_automation/config"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/browser"
	"login_automation/infrastructure/demosite"
	"login_automation/infrastructure/logging"
	"login_automation/infrastructure/report"
)

// ErrScenariosFailed is returned by run when at least one scenario did not pass.
var ErrScenariosFailed = errors.New("some scenarios did not pass")

// Interface wires the commands to their collaborators.
type Interface struct {
	out        io.Writer
	launch     fixture.Launcher
	loadConfig func() (*config.Config, error)
	newLogger  func(level string) *logrus.Logger
}

// NewInterface - creates the command line interface writing to out
func NewInterface(out io.Writer) *Interface {
	return &Interface{
		out:        out,
		launch:     browser.Launch,
		loadConfig: config.Load,
		newLogger:  logging.NewLogger,
	}
}

type runOptions struct {
	scenario string
	tags     []string
	baseURL  string
	engine   string
	headed   bool
	results  string
}

// Command - builds the root command
func (i *Interface) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "login-automation",
		Short:         "Run the login scenarios against a browser",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(i.out)
	root.AddCommand(i.runCommand(), i.listCommand(), i.summaryCommand(), i.serveDemoCommand())
	return root
}

func (i *Interface) runCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios from the catalog in one browser session",
		Long: `Run opens one browser, plays the selected scenarios one after another
and writes a result file per scenario when a results directory is set.
The command fails when any scenario does not pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return i.run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "run only the named scenario")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "run only scenarios with one of these tags")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "site under test (overrides BASE_URL)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "playwright or selenium (overrides BROWSER_ENGINE)")
	cmd.Flags().BoolVar(&opts.headed, "headed", false, "show the browser window")
	cmd.Flags().StringVar(&opts.results, "results", "", "directory for result files (overrides ALLURE_RESULTS_DIR)")
	return cmd
}

func (i *Interface) listCommand() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the scenario catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, sc := range scenarios.Filter(tags...) {
				fmt.Fprintf(i.out, "%-50s %-18s %-9s %s\n",
					sc.Name, sc.Metadata.Suite, sc.Metadata.Severity, strings.Join(sc.Metadata.Tags, ","))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "list only scenarios with one of these tags")
	return cmd
}

func (i *Interface) summaryCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the result files of previous runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				cfg, err := i.loadConfig()
				if err != nil {
					return err
				}
				dir = cfg.ResultsDir
			}
			if dir == "" {
				return errors.New("no results directory: pass --results or set ALLURE_RESULTS_DIR")
			}

			results, err := report.NewWriter(dir, logging.Discard()).Load()
			if err != nil {
				return err
			}
			counts := map[entities.Status]int{}
			for _, r := range results {
				counts[r.Status]++
				fmt.Fprintf(i.out, "%-8s %s %s\n", r.Status, time.UnixMilli(r.Start).Format(time.DateTime), r.FullName)
			}
			fmt.Fprintf(i.out, "\n%d results: %d passed, %d failed, %d broken, %d skipped\n", len(results),
				counts[entities.StatusPassed], counts[entities.StatusFailed], counts[entities.StatusBroken], counts[entities.StatusSkipped])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "results", "", "results directory (defaults to ALLURE_RESULTS_DIR)")
	return cmd
}

func (i *Interface) serveDemoCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-demo",
		Short: "Serve the replica of the demo store login flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := i.loadConfig()
			if err != nil {
				return err
			}
			return i.serveDemo(cmd.Context(), addr, i.newLogger(cfg.LogLevel))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

func (i *Interface) selectScenarios(opts runOptions) ([]entities.Scenario, error) {
	if opts.scenario != "" {
		sc, ok := scenarios.Find(opts.scenario)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", opts.scenario)
		}
		return []entities.Scenario{sc}, nil
	}
	selected := scenarios.Filter(opts.tags...)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no scenario has any of the tags %s", strings.Join(opts.tags, ", "))
	}
	return selected, nil
}

func (i *Interface) configure(opts runOptions) (*config.Config, error) {
	cfg, err := i.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.baseURL != "" {
		cfg.BaseURL = config.NormalizeBaseURL(opts.baseURL)
	}
	if opts.engine != "" {
		engine := strings.ToLower(opts.engine)
		if engine != config.EnginePlaywright && engine != config.EngineSelenium {
			return nil, fmt.Errorf("unknown engine %q", opts.engine)
		}
		cfg.Engine = engine
	}
	if opts.headed {
		cfg.Headless = false
	}
	if opts.results != "" {
		cfg.ResultsDir = opts.results
	}
	return cfg, nil
}

func (i *Interface) run(ctx context.Context, opts runOptions) error {
	selected, err := i.selectScenarios(opts)
	if err != nil {
		return err
	}
	cfg, err := i.configure(opts)
	if err != nil {
		return err
	}
	logger := i.newLogger(cfg.LogLevel)

	fx, err := fixture.OpenWith(ctx, i.launch, cfg, logger)
	if err != nil {
		return err
	}
	defer fx.Close()

	writer := report.NewWriter(cfg.ResultsDir, logger)
	var store interfaces.ResultStore = writer
	runner := scenarios.NewRunner(cfg.BaseURL, cfg.AssertTimeout, logger)

	fmt.Fprintf(i.out, "Running %d scenario(s) against %s with %s\n\n", len(selected), cfg.BaseURL, fx.Engine())

	counts := map[entities.Status]int{}
	for _, sc := range selected {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run canceled: %w", err)
		}

		res := runner.Run(ctx, fx.Page(), sc)
		counts[res.Status]++
		i.printResult(res)

		if err := store.SaveScenario(res); err != nil {
			logger.WithError(err).WithField("scenario", sc.Name).Warn("failed to save result")
		}
	}

	fmt.Fprintf(i.out, "\n%d passed, %d failed, %d broken\n",
		counts[entities.StatusPassed], counts[entities.StatusFailed], counts[entities.StatusBroken])
	if writer.Enabled() {
		fmt.Fprintf(i.out, "Results written to %s\n", writer.Dir())
	}

	if err := fx.Close(); err != nil {
		logger.WithError(err).Warn("failed to close browser")
	}
	if counts[entities.StatusPassed] != len(selected) {
		return ErrScenariosFailed
	}
	return nil
}

func (i *Interface) printResult(res entities.ScenarioResult) {
	label := "PASS"
	if !res.Passed() {
		label = strings.ToUpper(string(res.Status))
	}
	fmt.Fprintf(i.out, "%-6s %s (%s)\n", label, res.Scenario.Name, res.Stop.Sub(res.Start).Round(time.Millisecond))
	for _, step := range res.Steps {
		line := fmt.Sprintf("  %-8s %s", step.Status, step.Name)
		if step.Message != "" {
			line += ": " + step.Message
		}
		fmt.Fprintln(i.out, line)
	}
}

func (i *Interface) serveDemo(ctx context.Context, addr string, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           demosite.NewServer(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.WithField("addr", addr).Info("serving replica site")
	fmt.Fprintf(i.out, "Replica site on http://%s/ (Ctrl+C to stop)\n", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve replica site: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down replica site")
		return srv.Shutdown(shutdownCtx)
	}
}
