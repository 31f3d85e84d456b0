// Package config resolves the disco server and embox callback settings from
// the environment, emergence.conf and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variable names.
const (
	EnvServerURL = "server_url"
	EnvEmboxURL  = "embox_url"
	EnvEmboxPort = "embox_port"
)

// Config file sections.
const (
	SectionDisco = "em_disco"
	SectionEmbox = "embox"
)

// Built-in defaults.
const (
	DefaultServerURL = "http://localhost:8080"
	DefaultEmboxURL  = "http://localhost:8079/embox"
	DefaultEmboxPort = 8079
)

// Source names where a resolved value came from.
type Source string

// Sources in precedence order.
const (
	SourceEnv     Source = "environment"
	SourceFile    Source = "config file"
	SourceDefault Source = "default"
)

// Setting describes how one value is looked up in each source.
type Setting struct {
	EnvVar  string
	Section string
	Key     string
	Default string
}

// Known settings.
var (
	ServerURLSetting = Setting{EnvVar: EnvServerURL, Section: SectionDisco, Key: "server_url", Default: DefaultServerURL}
	EmboxURLSetting  = Setting{EnvVar: EnvEmboxURL, Section: SectionEmbox, Key: "url", Default: DefaultEmboxURL}
	EmboxPortSetting = Setting{EnvVar: EnvEmboxPort, Section: SectionEmbox, Key: "port", Default: strconv.Itoa(DefaultEmboxPort)}
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// EffectiveConfig is the resolved configuration. It is built once at startup
// and passed by value to every component that needs it.
type EffectiveConfig struct {
	DiscoURL  string `validate:"required,url"`
	EmboxURL  string `validate:"required,url"`
	EmboxPort int    `validate:"min=1,max=65535"`

	Origin Origin
}

// Origin records where each value of an EffectiveConfig came from.
type Origin struct {
	// File is the config file that was read, empty if none existed.
	File      string
	DiscoURL  Source
	EmboxURL  Source
	EmboxPort Source
}

// Validate checks that both URLs are well formed and the port is in range.
func (c EffectiveConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// QueryURL is the disco query endpoint.
func (c EffectiveConfig) QueryURL() string {
	return strings.TrimRight(c.DiscoURL, "/") + "/query"
}

// EmboxListenAddr is the address the embox listener binds.
func (c EffectiveConfig) EmboxListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.EmboxPort)
}

// Resolver looks settings up in the environment, then the parsed file, then defaults.
type Resolver struct {
	Env  LookupFunc
	File File
}

// Lookup returns the value of s and the source it came from. An environment
// variable that is set but blank counts as absent.
func (r Resolver) Lookup(s Setting) (string, Source) {
	if r.Env != nil && s.EnvVar != "" {
		if v, ok := r.Env(s.EnvVar); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceEnv
		}
	}
	if v, ok := r.File.Get(s.Section, s.Key); ok {
		return v, SourceFile
	}
	return s.Default, SourceDefault
}

// Resolve builds and validates the EffectiveConfig.
func (r Resolver) Resolve() (EffectiveConfig, error) {
	var cfg EffectiveConfig

	cfg.DiscoURL, cfg.Origin.DiscoURL = r.Lookup(ServerURLSetting)
	cfg.EmboxURL, cfg.Origin.EmboxURL = r.Lookup(EmboxURLSetting)

	rawPort, src := r.Lookup(EmboxPortSetting)
	cfg.Origin.EmboxPort = src
	port, err := strconv.Atoi(strings.TrimSpace(rawPort))
	if err != nil {
		return cfg, &ValueError{Source: src, Name: "embox port", Value: rawPort, Cause: err}
	}
	cfg.EmboxPort = port

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load resolves the configuration from the process environment and the first
// existing config file among CandidatePaths. It returns the file path used, if any.
func Load() (EffectiveConfig, string, error) {
	return LoadFrom(os.LookupEnv, CandidatePaths())
}

// LoadFrom is Load with explicit sources.
func LoadFrom(env LookupFunc, paths []string) (EffectiveConfig, string, error) {
	file, path, err := LoadFirst(paths)
	if err != nil {
		return EffectiveConfig{}, path, err
	}

	cfg, err := Resolver{Env: env, File: file}.Resolve()
	cfg.Origin.File = path
	return cfg, path, err
}
