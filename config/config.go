// Package config loads game settings from the environment.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"minesweeper/mines"
)

// Config holds every tunable of the game and its front-ends
type Config struct {
	// Rows is the number of grid rows
	Rows int `env:"MINES_ROWS" envDefault:"20"`

	// Cols is the number of grid columns
	Cols int `env:"MINES_COLS" envDefault:"20"`

	// Mines is the number of mines per board
	Mines int `env:"MINES_COUNT" envDefault:"70"`

	// Seed drives mine placement. Zero draws a fresh seed per process.
	Seed uint64 `env:"MINES_SEED" envDefault:"0"`

	// LogLevel is a logrus level name
	LogLevel string `env:"MINES_LOG_LEVEL" envDefault:"info"`

	// LogFormat is "text" or "json"
	LogFormat string `env:"MINES_LOG_FORMAT" envDefault:"text"`

	// CellSize is the edge of a cell in the desktop window, in pixels
	CellSize int `env:"MINES_CELL_SIZE" envDefault:"28"`

	// HTTPAddr is the listen address of the HTTP server
	HTTPAddr string `env:"MINES_HTTP_ADDR" envDefault:":8080"`

	// LogFile, when set, receives log output instead of stderr
	LogFile string `env:"MINES_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no front-end can run with
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.CellSize < 8 {
		return fmt.Errorf("config: cell size %d is below 8 pixels", c.CellSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// Params returns the board size and mine count
func (c Config) Params() mines.Params {
	return mines.Params{Rows: c.Rows, Cols: c.Cols, Mines: c.Mines}
}

// NewRand returns the mine placement generator. A zero seed is replaced with
// one read from crypto/rand.
func (c Config) NewRand() (*rand.Rand, error) {
	seed := c.Seed
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32)), nil
}

// NewLogger builds the process logger
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
	}
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// NewSession builds a game session from the configuration
func (c Config) NewSession(logger logrus.FieldLogger) (*mines.Session, error) {
	rng, err := c.NewRand()
	if err != nil {
		return nil, err
	}
	return mines.NewSession(c.Params(),
		mines.WithPlacer(mines.RandomPlacer(rng)),
		mines.WithLogger(logger),
	)
}
