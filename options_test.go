package golessfunctions

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestParseLogLevel(t *testing.T) {
	c := qt.New(t)

	c.Assert(ParseLogLevel("debug"), qt.Equals, slog.LevelDebug)
	c.Assert(ParseLogLevel("DeBug"), qt.Equals, slog.LevelDebug)
	c.Assert(ParseLogLevel("warn"), qt.Equals, slog.LevelWarn)
	c.Assert(ParseLogLevel("warning"), qt.Equals, slog.LevelWarn)
	c.Assert(ParseLogLevel("ERROR"), qt.Equals, slog.LevelError)
	c.Assert(ParseLogLevel("info"), qt.Equals, slog.LevelInfo)
	c.Assert(ParseLogLevel("foo"), qt.Equals, slog.LevelInfo)
}

func TestOptionsInit(t *testing.T) {
	c := qt.New(t)

	var opts Options
	c.Assert(opts.init(), qt.IsNil)
	c.Assert(opts.HostFilename, qt.Equals, defaultHostFilename)
	c.Assert(opts.Timeout, qt.Equals, defaultTimeout)

	opts = Options{Timeout: -time.Second}
	c.Assert(opts.init(), qt.ErrorMatches, "invalid Timeout.*")

	var sopts ServerOptions
	c.Assert(sopts.init(), qt.IsNil)
	c.Assert(sopts.CacheSize, qt.Equals, defaultCacheSize)
	c.Assert(sopts.Concurrency > 0, qt.IsTrue)
	c.Assert(sopts.Logger, qt.Not(qt.IsNil))

	sopts = ServerOptions{Concurrency: -1}
	c.Assert(sopts.init(), qt.ErrorMatches, "invalid Concurrency -1")
}

func TestLoadConfig(t *testing.T) {
	c := qt.New(t)

	cfg, err := LoadConfig(strings.NewReader(`
cacheSize: 10
concurrency: 2
logLevel: debug
`))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, Config{CacheSize: 10, Concurrency: 2, LogLevel: "debug"})

	cfg, err = LoadConfig(strings.NewReader(""))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, Config{})

	_, err = LoadConfig(strings.NewReader("cachesize: 10"))
	c.Assert(err, qt.ErrorMatches, "failed to decode config.*")

	var buf bytes.Buffer
	opts := Config{CacheSize: -1, LogLevel: "debug"}.ServerOptions(&buf)
	c.Assert(opts.CacheSize, qt.Equals, -1)
	opts.Logger.Debug("hello")
	c.Assert(buf.String(), qt.Contains, "msg=hello")
}
