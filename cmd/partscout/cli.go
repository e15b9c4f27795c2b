package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/partscout"
	scouthttp "github.com/fwojciec/partscout/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Components partscout.ComponentService
	Lookup     partscout.ComponentLookup
	Prober     partscout.Prober
	OCR        partscout.OCREngine
	Server     *scouthttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string        `name:"db" env:"PARTSCOUT_DB" help:"Database path (default ~/.partscout/partscout.db)"`
	BaseURL     string        `name:"base-url" env:"PARTSCOUT_BASE_URL" default:"https://www.findchips.com" help:"Search site root"`
	UserAgent   string        `name:"user-agent" env:"PARTSCOUT_USER_AGENT" help:"User-Agent sent to the search site"`
	Timeout     time.Duration `env:"PARTSCOUT_TIMEOUT" default:"15s" help:"Fetch timeout"`
	SnapshotDir string        `name:"snapshot-dir" env:"PARTSCOUT_SNAPSHOT_DIR" help:"Save fetched pages to this directory"`
	OCRBin      string        `name:"ocr-bin" env:"PARTSCOUT_OCR_BIN" default:"tesseract" help:"Tesseract binary"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	Scan     ScanCmd     `cmd:"" help:"Find part numbers in text files and images"`
	Validate ValidateCmd `cmd:"" help:"Check tokens against the part-number grammar"`
	Search   SearchCmd   `cmd:"" help:"Look up parts and store the results"`
	List     ListCmd     `cmd:"" help:"List stored components"`
	Clear    ClearCmd    `cmd:"" help:"Delete all stored components"`
	Export   ExportCmd   `cmd:"" help:"Export stored components to an Excel workbook"`
	Import   ImportCmd   `cmd:"" help:"Import components from an Excel workbook"`
	Probe    ProbeCmd    `cmd:"" help:"Check whether the search site is reachable"`
	Serve    ServeCmd    `cmd:"" help:"Serve the JSON API"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Files       []string `arg:"" help:"Text files or images to scan"`
	OCR         bool     `name:"ocr" help:"Run OCR on every file regardless of extension"`
	Concurrency int      `short:"c" default:"4" help:"Files processed at once"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Tokens []string `arg:"" help:"Tokens to check"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Parts    []string      `arg:"" help:"Part numbers to look up"`
	Interval time.Duration `default:"2s" help:"Wait between lookups"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Full bool `help:"Show every field"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Part   string `short:"p" help:"Export a single part"`
	Output string `short:"o" required:"" help:"Output .xlsx file"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"Excel workbook to import"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"PARTSCOUT_ADDR" default:":8080" help:"Listen address"`
}
