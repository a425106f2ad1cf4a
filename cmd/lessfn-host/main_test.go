package main

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/bep/golessfunctions"
)

func TestLoadConfig(t *testing.T) {
	c := qt.New(t)

	cfg, err := loadConfig("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, golessfunctions.Config{})

	filename := filepath.Join(t.TempDir(), "lessfn.yaml")
	c.Assert(os.WriteFile(filename, []byte("cacheSize: 64\nlogLevel: warn\n"), 0o644), qt.IsNil)

	cfg, err = loadConfig(filename)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, golessfunctions.Config{CacheSize: 64, LogLevel: "warn"})

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Assert(err, qt.Not(qt.IsNil))
}
