package xstyle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of an engine. Configurations may be read from
// YAML, e.g.
//
//	class-prefix: ui
//	debug-class-names: true
//	cache-ttl: 10m
//	hash-length: 8
type Config struct {
	ClassPrefix     string        `yaml:"class-prefix"`
	DebugClassNames bool          `yaml:"debug-class-names"`
	CacheTTL        time.Duration `yaml:"cache-ttl"`
	HashLength      int           `yaml:"hash-length"`
}

// DefaultConfig is the configuration used if no options are given.
var DefaultConfig = Config{
	ClassPrefix: "x",
	CacheTTL:    5 * time.Minute,
	HashLength:  6,
}

// LoadConfig reads a YAML configuration. Settings missing from the input
// keep their default values.
func LoadConfig(r io.Reader) (Config, error) {
	config := DefaultConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return DefaultConfig, fmt.Errorf("xstyle: reading configuration: %w", err)
	}
	tracer().Infof("configuration: prefix=%q, debug=%v, cache=%s, hash=%d",
		config.ClassPrefix, config.DebugClassNames, config.CacheTTL, config.HashLength)
	return config, nil
}

// Option is a type to help initializing engines at creation time.
type Option func(Config) Config

// WithConfig replaces the configuration as a whole. Options following it
// may modify single settings.
func WithConfig(c Config) Option {
	return func(Config) Config {
		return c
	}
}

// ClassPrefix sets the prefix of generated class names and custom properties.
func ClassPrefix(prefix string) Option {
	return func(c Config) Config {
		c.ClassPrefix = prefix
		return c
	}
}

// DebugClassNames switches on readable class names.
func DebugClassNames(on bool) Option {
	return func(c Config) Config {
		c.DebugClassNames = on
		return c
	}
}

// CacheTTL sets the expiration time of cached class strings. 0 switches
// caching off.
func CacheTTL(ttl time.Duration) Option {
	return func(c Config) Config {
		c.CacheTTL = ttl
		return c
	}
}

// HashLength sets the number of hash digits in generated names.
func HashLength(n int) Option {
	return func(c Config) Config {
		c.HashLength = n
		return c
	}
}
