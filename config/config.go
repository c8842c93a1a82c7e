// Package config loads the aqua-host configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = validator.New()

// Config is the aqua-host configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`

	// Timeout bounds a guest run. Zero disables the limit.
	Timeout time.Duration `yaml:"timeout" json:"timeout" validate:"gte=0" jsonschema:"description=Guest run time limit in nanoseconds; 0 disables it"`

	// MemoryLimitPages caps guest memory in 64 KiB pages. Zero keeps the
	// runtime default.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages" json:"memory_limit_pages" validate:"lte=65536" jsonschema:"maximum=65536"`

	Window WindowConfig `yaml:"window" json:"window"`
}

// WindowConfig bounds what guests may do with the window device.
type WindowConfig struct {
	MaxWidth   uint32 `yaml:"max_width" json:"max_width" validate:"gt=0" jsonschema:"minimum=1,default=7680"`
	MaxHeight  uint32 `yaml:"max_height" json:"max_height" validate:"gt=0" jsonschema:"minimum=1,default=4320"`
	MaxCaption uint32 `yaml:"max_caption" json:"max_caption" validate:"gt=0,lte=65536" jsonschema:"minimum=1,maximum=65536,default=1024"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			MaxWidth:   7680,
			MaxHeight:  4320,
			MaxCaption: 1024,
		},
	}
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		FieldNameTag:              "yaml",
	}
	schema := reflector.Reflect(&Config{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}
