// Command lessfn-host serves LESS function calls on Stdin and Stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bep/golessfunctions"
)

func main() {
	var (
		configFilename string
		showVersion    bool
	)

	flag.StringVar(&configFilename, "config", "", "path to a YAML config file")
	flag.BoolVar(&showVersion, "version", false, "print version information as JSON and exit")
	flag.Parse()

	if showVersion {
		if err := golessfunctions.WriteVersion(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(configFilename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := cfg.ServerOptions(os.Stderr)
	logger := opts.Logger

	server, err := golessfunctions.NewServer(opts)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := server.Serve(context.Background(), os.Stdin, os.Stdout); err != nil {
		logger.Error("serve failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig(filename string) (golessfunctions.Config, error) {
	if filename == "" {
		return golessfunctions.Config{}, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return golessfunctions.Config{}, err
	}
	defer f.Close()
	return golessfunctions.LoadConfig(f)
}
