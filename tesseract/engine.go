// Package tesseract implements partscout.OCREngine by running the tesseract
// command-line program.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/partscout"
	"golang.org/x/sync/semaphore"
)

// Engine defaults.
const (
	DefaultBinary   = "tesseract"
	DefaultLanguage = "eng"
	DefaultTimeout  = 60 * time.Second
	DefaultWorkers  = 2

	// CharWhitelist restricts recognition to glyphs that occur in part numbers.
	CharWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.-/_"
)

const maxStderr = 8 << 10

// Ensure Engine implements partscout.OCREngine at compile time.
var _ partscout.OCREngine = (*Engine)(nil)

// Runner lets tests stub the external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// Engine runs tesseract with a bounded number of concurrent processes.
type Engine struct {
	binary   string
	language string
	timeout  time.Duration
	workers  int64
	runner   Runner
	sem      *semaphore.Weighted
}

// Option configures an Engine.
type Option func(*Engine)

// WithBinary sets the tesseract binary name or path.
func WithBinary(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.binary = path
		}
	}
}

// WithLanguage sets the recognition language.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		e.language = lang
	}
}

// WithTimeout bounds a single recognition.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithWorkers sets how many recognitions may run at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = int64(n)
		}
	}
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(e *Engine) {
		e.runner = r
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		binary:   DefaultBinary,
		language: DefaultLanguage,
		timeout:  DefaultTimeout,
		workers:  DefaultWorkers,
		runner:   execRunner{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(e.workers)
	return e
}

// Args returns the command-line arguments used to recognize imagePath.
func (e *Engine) Args(imagePath string) []string {
	return []string{
		imagePath, "stdout",
		"-l", e.language,
		"--psm", "6",
		"-c", "tessedit_char_whitelist=" + CharWhitelist,
		"-c", "preserve_interword_spaces=1",
	}
}

// Recognize runs OCR on the image at imagePath and returns the raw text.
// A worker slot is held for the duration of the call and released on every
// path.
func (e *Engine) Recognize(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", partscout.Wrap(partscout.ENOTFOUND, err, "image %s not readable", imagePath)
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer e.sem.Release(1)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	out, stderr, err := e.runner.Run(ctx, e.binary, e.Args(imagePath)...)
	if err != nil {
		return "", e.classify(ctx, err, stderr)
	}
	return string(out), nil
}

func (e *Engine) classify(ctx context.Context, err error, stderr []byte) error {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return partscout.Wrap(partscout.ENOOCR, err, "OCR engine %q is not installed", e.binary)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return partscout.Wrap(partscout.ETIMEOUT, err, "OCR timed out after %s", e.timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	}
	msg := strings.TrimSpace(string(stderr))
	if len(msg) > maxStderr {
		msg = msg[:maxStderr] + "...(truncated)"
	}
	if msg == "" {
		msg = "no diagnostic output"
	}
	return partscout.Wrap(partscout.EOCR, err, "OCR failed: %s", msg)
}
