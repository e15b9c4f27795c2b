package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/partscout"
	scoutfs "github.com/fwojciec/partscout/fs"
	"github.com/fwojciec/partscout/goquery"
	scouthttp "github.com/fwojciec/partscout/http"
	"github.com/fwojciec/partscout/lookup"
	scoutprom "github.com/fwojciec/partscout/prometheus"
	"github.com/fwojciec/partscout/ratelimit"
	scoutslog "github.com/fwojciec/partscout/slog"
	"github.com/fwojciec/partscout/sqlite"
	"github.com/fwojciec/partscout/tesseract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Registry collects metrics for the lookup pipeline.
	Registry *prometheus.Registry
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		Registry: prometheus.NewRegistry(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("partscout"),
		kong.Description("Find electronic part numbers in noisy text and look them up."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'partscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch cmd {
	case "search", "list", "clear", "export", "import", "serve":
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PARTSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Components = sqlite.NewComponentService(m.DB)
	}

	switch cmd {
	case "search", "probe", "serve":
		m.wireLookup(cli, deps)
	}

	if cmd == "scan" {
		deps.OCR = scoutslog.NewLoggingOCREngine(
			tesseract.NewEngine(tesseract.WithBinary(cli.OCRBin)),
			deps.Logger,
		)
	}

	if cmd == "serve" {
		m.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Server = &scouthttp.Server{
			Lookup:     deps.Lookup,
			Components: deps.Components,
			Prober:     deps.Prober,
			Metrics:    promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
			Logger:     deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

// wireLookup builds the fetch, classify and extract pipeline.
func (m *Main) wireLookup(cli *CLI, deps *Dependencies) {
	fetchOpts := []scouthttp.Option{scouthttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		fetchOpts = append(fetchOpts, scouthttp.WithUserAgent(cli.UserAgent))
	}
	fetcher := scoutslog.NewLoggingFetcher(scouthttp.NewFetcher(fetchOpts...), deps.Logger)

	metrics := scoutprom.NewMetrics(m.Registry)
	limiter := scoutprom.NewInstrumentedLimiter(ratelimit.New(), metrics)

	opts := []lookup.Option{lookup.WithBaseURL(cli.BaseURL)}
	if cli.SnapshotDir != "" {
		opts = append(opts, lookup.WithSnapshots(scoutfs.NewSnapshotStore(cli.SnapshotDir)))
	}

	svc := lookup.NewService(fetcher, limiter, goquery.NewClassifier(), goquery.NewExtractor(cli.BaseURL), opts...)
	deps.Prober = svc
	deps.Lookup = scoutprom.NewInstrumentedLookup(scoutslog.NewLoggingLookup(svc, deps.Logger), metrics)
}

// printError writes the user-facing message of err to stderr.
func printError(deps *Dependencies, err error) {
	fmt.Fprintf(deps.Stderr, "error: %s\n", partscout.ErrorMessage(err))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "partscout.db"
	}
	dir := filepath.Join(home, ".partscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "partscout.db")
}
