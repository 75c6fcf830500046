package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// defaultScript mirrors the classic walkthrough: four admissions, a read of
// A, then two more admissions that force evictions.
const defaultScript = "put A Hello; put B World; put C Holberton; put D School; dump; " +
	"get A; put E Battery; dump; put C Street; get B; put F Mission; dump"

// config is populated from EVICT_* environment variables first, then from
// flags, so flags win.
type config struct {
	Policy      string `env:"EVICT_POLICY" envDefault:"all"`
	MaxItems    int    `env:"EVICT_MAX_ITEMS" envDefault:"4"`
	Script      string `env:"EVICT_SCRIPT"`
	File        string `env:"EVICT_FILE"`
	Trace       bool   `env:"EVICT_TRACE"`
	Verbose     bool   `env:"EVICT_VERBOSE"`
	MetricsAddr string `env:"EVICT_METRICS_ADDR"`
}

func loadConfig(args []string) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	fs := flag.NewFlagSet("evict", flag.ContinueOnError)
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "Policy: basic, fifo, lifo, lru, mru or all")
	fs.IntVar(&cfg.MaxItems, "max", cfg.MaxItems, "Maximum number of items")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "Inline script, e.g. \"put A 1; get A\"")
	fs.StringVar(&cfg.File, "file", cfg.File, "Read the script from a file")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Print OpenTelemetry spans to stderr")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Log cache debug records to stderr")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address and wait for a signal")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// script resolves the script source: file, then inline, then the default.
func (c config) script() (string, error) {
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(b), nil
	}
	if c.Script != "" {
		return c.Script, nil
	}
	return defaultScript, nil
}
