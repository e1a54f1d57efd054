package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Board struct {
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Seed   *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type Log struct {
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
}

type Config struct {
	Mode           string   `json:"mode" yaml:"mode"`
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
	Board          Board    `json:"board" yaml:"board"`
	Log            Log      `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Mode: "development",
		Addr: ":8080",
		Board: Board{
			Width:  10,
			Height: 20,
		},
		Log: Log{
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	seed := "none"
	if c.Board.Seed != nil {
		seed = strconv.FormatUint(*c.Board.Seed, 10)
	}
	return map[string]any{
		"mode":            c.Mode,
		"addr":            c.Addr,
		"allowed_origins": c.AllowedOrigins,
		"board_width":     c.Board.Width,
		"board_height":    c.Board.Height,
		"board_seed":      seed,
		"log_file":        c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// LoadDotEnv loads environment variables from path. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load starts from Default, overlays the file at path (if path is not
// empty) and then the MINES_* environment variables.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		if err := ReadFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.applyEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

var ErrInvalidBoardSize = errors.New("board width and height must not be negative")

// validate allows zero sizes; such a board is all border.
func (c Config) validate() error {
	if c.Board.Width < 0 || c.Board.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, c.Board.Width, c.Board.Height)
	}
	return nil
}

// ReadFile decodes YAML for .yaml and .yml files and JSON otherwise.
func ReadFile(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, config)
	default:
		err = json.Unmarshal(b, config)
	}
	if err != nil {
		return fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if addr, ok := os.LookupEnv("MINES_ADDR"); ok {
		c.Addr = addr
	}
	if origins, ok := os.LookupEnv("MINES_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}
	if logFile, ok := os.LookupEnv("MINES_LOG_FILE"); ok {
		c.Log.File = logFile
	}
	if width, ok := os.LookupEnv("MINES_WIDTH"); ok {
		w, err := strconv.Atoi(width)
		if err != nil {
			return fmt.Errorf("unable to convert MINES_WIDTH to int: %w", err)
		}
		c.Board.Width = w
	}
	if height, ok := os.LookupEnv("MINES_HEIGHT"); ok {
		h, err := strconv.Atoi(height)
		if err != nil {
			return fmt.Errorf("unable to convert MINES_HEIGHT to int: %w", err)
		}
		c.Board.Height = h
	}
	if seed, ok := os.LookupEnv("MINES_SEED"); ok {
		if seed == "" {
			c.Board.Seed = nil
		} else {
			s, err := strconv.ParseUint(seed, 10, 64)
			if err != nil {
				return fmt.Errorf("unable to convert MINES_SEED to uint64: %w", err)
			}
			c.Board.Seed = &s
		}
	}
	return nil
}
