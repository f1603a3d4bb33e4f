package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFlight loads the flight runner configuration.
// Search order: customPath -> ~/.flight/configs/flight.yaml -> ./configs/flight.yaml -> embedded default.
// Fields missing from a file keep their default values. The result is validated.
func LoadFlight(customPath string) (FlightConfig, error) {
	// Try custom path first; errors here are reported, not skipped
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFlightConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultFlightConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("flight.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flight.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlightYAML)
	if err != nil {
		return DefaultFlightConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath returns the file LoadFlight would read, or empty when only
// the embedded default applies. Used to pick the file a Holder watches.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range []string{UserConfigPath("flight.yaml"), "configs/flight.yaml"} {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (FlightConfig, error) {
	cfg := DefaultFlightConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flight", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// ValidationError lists every problem found in a config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// IsValidationError reports whether err is a config validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks that the config describes a playable field.
func (c FlightConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Field.Height < 3 {
		add("field.height must be at least 3, got %d", c.Field.Height)
	}
	if c.Field.ActorColumn < 1 {
		add("field.actor_column must be at least 1, got %d", c.Field.ActorColumn)
	}
	if c.Field.Width < c.Field.ActorColumn+2 {
		add("field.width must exceed actor_column+1, got %d", c.Field.Width)
	}
	if c.Physics.JumpHeight < 1 {
		add("physics.jump_height must be at least 1, got %d", c.Physics.JumpHeight)
	}
	if c.Physics.JumpHeight > c.Field.Height-2 {
		add("physics.jump_height must fit the field (max %d), got %d", c.Field.Height-2, c.Physics.JumpHeight)
	}
	if c.Physics.TickMS <= 0 {
		add("physics.tick_ms must be positive, got %d", c.Physics.TickMS)
	}
	if c.Loop.PollMS <= 0 {
		add("loop.poll_ms must be positive, got %d", c.Loop.PollMS)
	}
	if c.Spawn.Denominator <= 0 {
		add("spawn.denominator must be positive, got %d", c.Spawn.Denominator)
	}
	if c.Spawn.Numerator < 0 || c.Spawn.Numerator > c.Spawn.Denominator {
		add("spawn.numerator must be in [0, denominator], got %d", c.Spawn.Numerator)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
