// Package config provides configuration loading for the OpenAPI to Bruno generator.
package config

import (
	"fmt"
	"slices"
	"strings"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// Default collection descriptor values.
const (
	DefaultVersion = "1"
	DefaultName    = "Untitled"
	DefaultType    = "collection"
)

// DefaultIgnore is the default bruno.json ignore list.
var DefaultIgnore = []string{"node_modules", ".git"}

// Config holds the generator configuration.
type Config struct {
	Bruno  Bruno  `koanf:"bruno"`
	Update Update `koanf:"update"`
	Auth   Auth   `koanf:"auth"`
}

// Bruno holds the collection descriptor fields written to bruno.json.
type Bruno struct {
	Name    string   `koanf:"name"`
	Version string   `koanf:"version"`
	Type    string   `koanf:"type"`
	Ignore  []string `koanf:"ignore"`
}

// Update holds the update-mode policy.
type Update struct {
	Ignore Ignore `koanf:"ignore"`
}

// Auth holds the auth injection policy. An empty Type disables injection.
type Auth struct {
	Type   string            `koanf:"type"`
	Values map[string]string `koanf:"values"`
	Ignore Ignore            `koanf:"ignore"`
}

// Ignore lists operation ids and path prefixes to leave out.
type Ignore struct {
	IDs     []string `koanf:"ids"`
	Folders []string `koanf:"folders"`
}

// Matches reports whether the operation is covered by the rule: its id is
// listed, or the path template starts with one of the folder strings.
// Folder matching is a plain string prefix test, not segment aware.
func (i Ignore) Matches(operationID, path string) bool {
	if slices.Contains(i.IDs, operationID) {
		return true
	}

	for _, folder := range i.Folders {
		if strings.HasPrefix(path, folder) {
			return true
		}
	}

	return false
}

// Enabled reports whether auth injection is configured.
func (a Auth) Enabled() bool {
	return a.Type != ""
}

// Kind returns the validated auth kind.
func (a Auth) Kind() (domain.AuthKind, error) {
	return domain.ParseAuthKind(a.Type)
}

// Descriptor returns the bruno.json content, filling unset fields with defaults.
func (b Bruno) Descriptor() domain.Descriptor {
	d := domain.Descriptor{
		Version: b.Version,
		Name:    b.Name,
		Type:    b.Type,
		Ignore:  b.Ignore,
	}

	if d.Version == "" {
		d.Version = DefaultVersion
	}
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Type == "" {
		d.Type = DefaultType
	}
	if d.Ignore == nil {
		d.Ignore = slices.Clone(DefaultIgnore)
	}

	return d
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bruno: Bruno{
			Name:    DefaultName,
			Version: DefaultVersion,
			Type:    DefaultType,
			Ignore:  slices.Clone(DefaultIgnore),
		},
	}
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	if !c.Auth.Enabled() {
		return nil
	}

	kind, err := c.Auth.Kind()
	if err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	if _, err := domain.NewAuth(kind, c.Auth.Values); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	return nil
}

// Load returns the configuration using go-libs config-loader. The file at path
// (JSON or YAML) is layered over the defaults; an empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := load(path, Default())
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func load(path string, defaults Config) (Config, error) {
	if path == "" {
		return configloader.NewConfigLoader(
			configloader.WithDefaults(defaults),
		).Load()
	}

	return configloader.NewConfigLoader(
		configloader.WithDefaults(defaults),
		configloader.WithFile[Config](path),
	).Load()
}
