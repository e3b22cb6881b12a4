// Package config loads compiler settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/arithcc/codegen"
	"github.com/ezrec/arithcc/translate"
)

var (
	ErrFormatUnknown = translate.Error("unknown configuration format")
	ErrKeyUnknown    = translate.Error("unknown configuration key")
	ErrStackLimit    = translate.Error("stack limit must not be negative")
)

// Format is a configuration file format.
type Format int

const (
	FormatTOML Format = iota // TOML, the default.
	FormatYAML               // YAML.
)

// String returns the string representation of the format.
func (format Format) String() string {
	switch format {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf detects the format from a file extension.
func FormatOf(path string) (format Format, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		err = ErrFormatUnknown
	}
	return
}

// Config holds the compiler settings.
type Config struct {
	Syntax     string `toml:"syntax" yaml:"syntax"`           // Assembler dialect, "intel" or "att".
	Label      string `toml:"label" yaml:"label"`             // Function label.
	Language   string `toml:"language" yaml:"language"`       // Diagnostic language, BCP 47. Empty uses the locale.
	Check      bool   `toml:"check" yaml:"check"`             // Cross-check generated code before output.
	Verbose    bool   `toml:"verbose" yaml:"verbose"`         // Log pipeline stages.
	StackLimit int    `toml:"stack_limit" yaml:"stack_limit"` // Emulator stack depth. Zero uses the default.
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Syntax: codegen.DIALECT_INTEL.String(),
		Label:  codegen.DefaultLabel,
	}
}

// Load reads a configuration file over the defaults.
func Load(path string) (cfg *Config, err error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err = Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return
}

// Parse decodes configuration text over the defaults and validates it.
func Parse(data []byte, format Format) (cfg *Config, err error) {
	cfg = Default()

	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%v: %w", undecoded[0], ErrKeyUnknown)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrFormatUnknown
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return
}

// Validate checks every setting.
func (cfg *Config) Validate() (err error) {
	_, err = codegen.ParseDialect(cfg.Syntax)
	if err != nil {
		return fmt.Errorf("syntax %q: %w", cfg.Syntax, err)
	}

	err = codegen.ValidLabel(cfg.Label)
	if err != nil {
		return fmt.Errorf("label %q: %w", cfg.Label, err)
	}

	if cfg.StackLimit < 0 {
		return ErrStackLimit
	}

	return
}

// Dialect returns the configured assembler dialect, defaulting to Intel.
func (cfg *Config) Dialect() codegen.Dialect {
	dialect, err := codegen.ParseDialect(cfg.Syntax)
	if err != nil {
		return codegen.DIALECT_INTEL
	}
	return dialect
}
