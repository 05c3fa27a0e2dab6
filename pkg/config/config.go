// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/semtag/pkg/defaults"
	"github.com/NVIDIA/semtag/pkg/version"
)

const (
	// DirName is the directory under the user config dir holding semtag files.
	DirName = "semantic_tag_increment"

	// FileName is the config file name inside DirName.
	FileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. SEMTAG_PRERELEASE_TYPE.
	EnvPrefix = "SEMTAG"

	schemaURL = "config.schema.json"
)

// Keys understood in the config file and environment.
const (
	KeyIncrement        = "increment"
	KeyPrereleaseType   = "prerelease-type"
	KeyPreserveMetadata = "preserve-metadata"
	KeyCheckConflicts   = "check-conflicts"
	KeyOutputFormat     = "output-format"
	KeyFetchTimeout     = "fetch-timeout"
	KeySources          = "sources"
	KeyLogLevel         = "log-level"
	KeyServerPort       = "server.port"
)

//go:embed schema.json
var schemaJSON []byte

// Config is the effective semtag configuration after merging defaults, the
// config file and SEMTAG_* environment variables.
type Config struct {
	Increment        string        `mapstructure:"increment" yaml:"increment" json:"increment"`
	PrereleaseType   string        `mapstructure:"prerelease-type" yaml:"prerelease-type" json:"prereleaseType"`
	PreserveMetadata bool          `mapstructure:"preserve-metadata" yaml:"preserve-metadata" json:"preserveMetadata"`
	CheckConflicts   bool          `mapstructure:"check-conflicts" yaml:"check-conflicts" json:"checkConflicts"`
	OutputFormat     string        `mapstructure:"output-format" yaml:"output-format" json:"outputFormat"`
	FetchTimeout     time.Duration `mapstructure:"fetch-timeout" yaml:"fetch-timeout" json:"fetchTimeout"`
	Sources          []string      `mapstructure:"sources" yaml:"sources,omitempty" json:"sources,omitempty"`
	LogLevel         string        `mapstructure:"log-level" yaml:"log-level" json:"logLevel"`
	Server           ServerConfig  `mapstructure:"server" yaml:"server" json:"server"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// ServerConfig holds semtagd settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port" json:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Increment:      string(version.DirectivePatch),
		CheckConflicts: true,
		OutputFormat:   string(version.FormatFull),
		FetchTimeout:   defaults.TagFetchTimeout,
		LogLevel:       "info",
		Server:         ServerConfig{Port: 8080},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/semantic_tag_increment/config.yaml,
// falling back to the platform user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Load reads the configuration at path from fs. An empty path means
// DefaultPath, which is optional; an explicit path must exist. The file is
// validated against the embedded schema before it is applied.
func Load(fs afero.Fs, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := newViper(fs)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}
	if !exists && explicit {
		return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}

	var file string
	if exists {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := validateSchema(data); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		file = path
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault(KeyIncrement, d.Increment)
	v.SetDefault(KeyPrereleaseType, d.PrereleaseType)
	v.SetDefault(KeyPreserveMetadata, d.PreserveMetadata)
	v.SetDefault(KeyCheckConflicts, d.CheckConflicts)
	v.SetDefault(KeyOutputFormat, d.OutputFormat)
	v.SetDefault(KeyFetchTimeout, d.FetchTimeout.String())
	v.SetDefault(KeySources, []string{})
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyServerPort, d.Server.Port)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks values the schema cannot see, such as those coming from
// the environment.
func (c *Config) Validate() error {
	if _, err := version.ParseDirective(c.Increment); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyIncrement, err)
	}
	if err := version.ValidatePrereleaseType(c.PrereleaseType); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyPrereleaseType, err)
	}
	if _, err := version.ParseFormatMode(c.OutputFormat); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyOutputFormat, err)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive, got %s", KeyFetchTimeout, c.FetchTimeout)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid %s: %d", KeyServerPort, c.Server.Port)
	}
	return nil
}

// Init writes the default configuration to path (DefaultPath when empty),
// creating parent directories. An existing file is only replaced with force.
func Init(fs afero.Fs, path string, force bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if exists, err := afero.Exists(fs, path); err != nil {
		return "", fmt.Errorf("failed to stat config file %s: %w", path, err)
	} else if exists && !force {
		return "", fmt.Errorf("config file %s already exists: %w", path, os.ErrExist)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	slog.Debug("wrote default config", "path", path)
	return path, nil
}

// MarshalYAML renders c in the config file layout.
func (c Config) MarshalYAML() (any, error) {
	doc := map[string]any{
		KeyIncrement:        c.Increment,
		KeyPreserveMetadata: c.PreserveMetadata,
		KeyCheckConflicts:   c.CheckConflicts,
		KeyOutputFormat:     c.OutputFormat,
		KeyFetchTimeout:     c.FetchTimeout.String(),
		KeyLogLevel:         c.LogLevel,
		"server":            map[string]any{"port": c.Server.Port},
	}
	if c.PrereleaseType != "" {
		doc[KeyPrereleaseType] = c.PrereleaseType
	}
	if len(c.Sources) > 0 {
		doc[KeySources] = c.Sources
	}
	return doc, nil
}

func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil
	}

	// The validator expects JSON-decoded values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	sch, err := compileSchema()
	if err != nil {
		return err
	}
	return sch.Validate(inst)
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to load config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to load config schema: %w", err)
	}
	return c.Compile(schemaURL)
}
