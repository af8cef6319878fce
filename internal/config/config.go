// Copyright 2025 Arion Yau
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
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys as exposed to configuration UIs and YAML files
const (
	KeyHost     = "HOST"
	KeyLogin    = "LOGIN"
	KeyPassword = "PASSWORD"
)

// Default connection settings for a local media center
const (
	DefaultHost     = "http://localhost/jsonrpc"
	DefaultLogin    = "kodi"
	DefaultPassword = "kodi"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config holds the media-center connection settings. It is built once and
// only read afterwards.
type Config struct {
	Host     string `yaml:"HOST" json:"HOST"`
	Login    string `yaml:"LOGIN" json:"LOGIN"`
	Password string `yaml:"PASSWORD" json:"PASSWORD"`
}

// ConfigError reports a missing or malformed configuration key
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

// Defaults returns the default configuration as a key/value mapping
func Defaults() map[string]string {
	return map[string]string{
		KeyHost:     DefaultHost,
		KeyLogin:    DefaultLogin,
		KeyPassword: DefaultPassword,
	}
}

// Template returns the configuration shape offered to configuration UIs.
// Its values are the defaults.
func Template() map[string]string {
	return Defaults()
}

// Keys returns the recognized configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, 3)
	for k := range Defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge overlays overrides on defaults key by key and validates the result.
// Keys present in overrides always win, including empty values, which then
// fail validation.
func Merge(defaults, overrides map[string]string) (Config, error) {
	merged := make(map[string]string, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		if !isKnownKey(k) {
			return Config{}, &ConfigError{Key: k, Reason: "is not a recognized key"}
		}
		merged[k] = v
	}

	cfg := Config{
		Host:     merged[KeyHost],
		Login:    merged[KeyLogin],
		Password: merged[KeyPassword],
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every key is populated and HOST is an absolute URL
func (c Config) Validate() error {
	if c.Host == "" {
		return &ConfigError{Key: KeyHost, Reason: "is required"}
	}
	u, err := url.ParseRequestURI(c.Host)
	if err != nil {
		return &ConfigError{Key: KeyHost, Reason: fmt.Sprintf("is not a valid URL: %v", err)}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Key: KeyHost, Reason: fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Host)}
	}
	if c.Login == "" {
		return &ConfigError{Key: KeyLogin, Reason: "is required"}
	}
	if c.Password == "" {
		return &ConfigError{Key: KeyPassword, Reason: "is required"}
	}
	return nil
}

// Map returns the configuration as a key/value mapping
func (c Config) Map() map[string]string {
	return map[string]string{
		KeyHost:     c.Host,
		KeyLogin:    c.Login,
		KeyPassword: c.Password,
	}
}

// Redacted returns a copy safe for display, with the password masked
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}

// ReadOverrides reads a YAML mapping of configuration overrides from path.
// ${VAR} references in values are expanded from the environment. A missing
// file yields an empty mapping.
func ReadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	overrides := map[string]string{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for k, v := range overrides {
		overrides[k] = expandEnvString(v)
	}
	return overrides, nil
}

// Load reads overrides from path and merges them over the defaults
func Load(path string) (Config, error) {
	overrides, err := ReadOverrides(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Merge(Defaults(), overrides)
	if err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isKnownKey(key string) bool {
	switch key {
	case KeyHost, KeyLogin, KeyPassword:
		return true
	}
	return false
}

// expandEnvString replaces ${VAR} with the value of the environment variable
func expandEnvString(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
