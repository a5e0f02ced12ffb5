// Package config defines the runtime configuration shared by the commands.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/feroxlabs/feroxcrypt/internal/crypt"
)

// Config collects the flag, environment, and positional-argument surface of
// the tool. The core flows receive already-validated values from here.
type Config struct {
	// Common flags
	Parallel int `validate:"min=1"`
	Quiet    bool
	Stats    bool

	// Encryption flags
	Level string `validate:"omitempty,oneof=interactive moderate paranoid"`
	Force bool

	// Keyfile path, optional for both directions
	Keyfile string

	// Batch filtering flags
	Recursive   bool
	Include     []string
	Exclude     []string
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Command-specific
	Decrypt bool

	// Positional arguments: files and/or directories
	Paths []string `validate:"min=1"`
}

// Validate checks the configuration against the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

// SecurityLevel resolves the level name, defaulting to moderate.
func (c *Config) SecurityLevel() (crypt.Level, error) {
	if c.Level == "" {
		return crypt.Moderate, nil
	}

	return crypt.ParseLevel(c.Level)
}
