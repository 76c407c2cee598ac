// Package cli implements the tlink command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ganot/tlink/internal/app"
	"github.com/ganot/tlink/internal/config"
	"github.com/ganot/tlink/internal/credentials"
	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/sqlite"
	"github.com/ganot/tlink/internal/transport"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// runtime carries what every command needs. Fields set through options are
// kept; the rest is filled from the configuration before a command runs.
type runtime struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     credentials.Store
	caller    transport.Caller

	jsonOutput bool
}

// Option customizes the root command.
type Option func(*runtime)

// WithIO sets the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(rt *runtime) {
		rt.in, rt.out, rt.errOut = in, out, errOut
	}
}

// WithConfig skips loading the configuration from file and environment.
func WithConfig(cfg config.Config) Option {
	return func(rt *runtime) { rt.cfg = &cfg }
}

// WithCaller replaces the XML-RPC connection. The caller must already carry
// the developer key.
func WithCaller(caller transport.Caller) Option {
	return func(rt *runtime) { rt.caller = caller }
}

// WithStore replaces the platform credential store.
func WithStore(store credentials.Store) Option {
	return func(rt *runtime) { rt.store = store }
}

// NewRootCmd builds the tlink command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	rt := &runtime{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(rt)
	}

	root := &cobra.Command{
		Use:           "tlink",
		Short:         "Query a TestLink server and report test results to it",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.logCloser != nil {
				_ = rt.logCloser.Close()
			}
		},
	}
	root.SetIn(rt.in)
	root.SetOut(rt.out)
	root.SetErr(rt.errOut)
	root.PersistentFlags().BoolVar(&rt.jsonOutput, "json", false, "Print JSON instead of tables")

	root.AddCommand(
		newPingCmd(rt),
		newProjectCmd(rt),
		newSuiteCmd(rt),
		newCaseCmd(rt),
		newPlanCmd(rt),
		newBuildCmd(rt),
		newReportCmd(rt),
		newLastCmd(rt),
		newHistoryCmd(rt),
		newKeyCmd(rt),
		newServeCmd(rt),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, opts ...Option) int {
	root := NewRootCmd(opts...)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func (rt *runtime) setup() error {
	if rt.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		rt.cfg = &cfg
	}
	if rt.logger == nil {
		rt.logger, rt.logCloser = newLogger(rt.errOut, rt.cfg.Log.Level, os.Getenv("TLINK_LOG_PATH"))
	}
	if rt.store == nil {
		rt.store = credentials.New()
	}
	return nil
}

// withTimeout bounds ctx by the configured server timeout.
func (rt *runtime) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rt.cfg.Server.Timeout > 0 {
		return context.WithTimeout(ctx, rt.cfg.Server.Timeout)
	}
	return context.WithCancel(ctx)
}

// connect returns the remote caller, dialing the configured endpoint unless
// one was injected.
func (rt *runtime) connect(ctx context.Context) (transport.Caller, func(), error) {
	if rt.caller != nil {
		return transport.WithLogging(rt.caller, rt.logger), func() {}, nil
	}

	devKey, err := credentials.DevKey(ctx, rt.store, rt.cfg.Server.DevKey)
	if err != nil {
		if errors.Is(err, credentials.ErrNoDevKey) {
			return nil, nil, fmt.Errorf("%w: set TLINK_DEV_KEY or run 'tlink key set'", err)
		}
		return nil, nil, err
	}

	client, err := transport.NewClient(rt.cfg.Server.URL, nil)
	if err != nil {
		return nil, nil, err
	}
	keyed, err := transport.WithDevKey(client, devKey)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return transport.WithLogging(keyed, rt.logger), func() { _ = client.Close() }, nil
}

// openApp builds the services. withJournal opens the execution journal too.
func (rt *runtime) openApp(ctx context.Context, withJournal bool) (*app.App, func(), error) {
	caller, closeCaller, err := rt.connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	var journal execution.Journal
	closeJournal := func() {}
	if withJournal && rt.cfg.Journal.Path != "" {
		if err := ensureDir(rt.cfg.Journal.Path); err != nil {
			closeCaller()
			return nil, nil, fmt.Errorf("preparing journal path: %w", err)
		}
		db, err := sqlite.Open(rt.cfg.Journal.Path)
		if err != nil {
			closeCaller()
			return nil, nil, err
		}
		journal = sqlite.NewJournalRepository(db)
		closeJournal = func() { _ = db.Close() }
	}

	cleanup := func() {
		closeJournal()
		closeCaller()
	}
	return app.New(caller, journal, rt.logger), cleanup, nil
}
