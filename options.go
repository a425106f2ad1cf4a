package golessfunctions

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/bep/golessfunctions/functions"
	"github.com/bep/golessfunctions/internal/lessfntesting"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultCacheSize = 1024
)

// Options configures a Client.
type Options struct {
	// The path to the function host binary, an absolute filename
	// if not in $PATH.
	// If this is not set, we will try 'lessfn-host' in the OS $PATH.
	HostFilename string

	// Env holds extra environment variables for the host process,
	// each on the form "key=value".
	Env []string

	// Timeout is the maximum time to wait for a single call.
	// Default is 30 seconds.
	Timeout time.Duration

	// LogEventHandler will, if set, receive log events from the host.
	LogEventHandler func(LogEvent)
}

func (opts *Options) init() error {
	if opts.HostFilename == "" {
		opts.HostFilename = defaultHostFilename
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("invalid Timeout %s", opts.Timeout)
	}
	return nil
}

// LogEvent is a log message sent by the function host.
type LogEvent struct {
	// Type is the type of log event.
	Type LogEventType

	Message string
}

// LogEventType is the type of log event.
type LogEventType string

const (
	LogEventTypeDebug   LogEventType = "debug"
	LogEventTypeInfo    LogEventType = "info"
	LogEventTypeWarning LogEventType = "warning"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// CacheSize is the number of builtin call results to keep.
	// Zero means the default (1024), a negative value disables caching.
	CacheSize int

	// Concurrency is the maximum number of calls evaluated at once.
	// Default is runtime.NumCPU().
	Concurrency int

	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger

	// Functions holds custom functions, may be nil.
	Functions *functions.FunctionRegistry

	// Used in tests.
	panicWhen lessfntesting.PanicWhen
}

func (opts *ServerOptions) init() error {
	if opts.CacheSize == 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Concurrency < 0 {
		return fmt.Errorf("invalid Concurrency %d", opts.Concurrency)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

// Config is the file configuration of the function host.
type Config struct {
	CacheSize   int    `yaml:"cacheSize"`
	Concurrency int    `yaml:"concurrency"`
	LogLevel    string `yaml:"logLevel"`
}

// LoadConfig decodes a YAML config from r. An empty document gives the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ServerOptions creates server options from cfg, logging as text to w.
func (cfg Config) ServerOptions(w io.Writer) ServerOptions {
	return ServerOptions{
		CacheSize:   cfg.CacheSize,
		Concurrency: cfg.Concurrency,
		Logger:      slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(cfg.LogLevel)})),
	}
}

// ParseLogLevel will convert s into a slog.Level.
// Case insensitive, returns slog.LevelInfo for unknown value.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
