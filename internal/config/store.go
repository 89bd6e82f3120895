package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

const (
	defaultDirName  = ".tabelog"
	defaultFileName = ".tabelog-config.json"
	envConfigPath   = "TABELOG_CONFIG_PATH"
)

var (
	// ErrConfigNotFound is returned when the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when the config payload is malformed.
	ErrInvalidConfig = errors.New("config file is invalid")
)

// Store loads and writes the saved search profiles.
type Store struct {
	path string
}

// NewStore creates a store at TABELOG_CONFIG_PATH when set, otherwise at
// ~/.tabelog/.tabelog-config.json.
func NewStore() (*Store, error) {
	if override := os.Getenv(envConfigPath); override != "" {
		return &Store{path: override}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, defaultDirName, defaultFileName)}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the stored profiles.
func (s *Store) Load(_ context.Context) (domain.Config, error) {
	payload, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Config{}, ErrConfigNotFound
	}
	if err != nil {
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.Config
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Save validates and writes the profiles, creating the config directory on
// first use. The file is indented so it stays hand-editable.
func (s *Store) Save(_ context.Context, cfg domain.Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validate(cfg domain.Config) error {
	if len(cfg.Profiles) == 0 {
		return fmt.Errorf("%w: profiles is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			return fmt.Errorf("%w: profile with empty name", ErrInvalidConfig)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate profile %q", ErrInvalidConfig, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
