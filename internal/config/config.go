/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type StorageConfig struct {
	Backend    string `yaml:"backend"` // "file" | "sqlite" | "memory"
	Dir        string `yaml:"dir"`     // empty means the platform data dir
	Slot       string `yaml:"slot"`
	MaxBackups int    `yaml:"max_backups"`
}

type PresentationConfig struct {
	IntroMs  int    `yaml:"intro_ms"`
	Renderer string `yaml:"renderer"` // "tui" | "fyne"
}

type IngestConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int                `yaml:"config_version"`
	Storage       StorageConfig      `yaml:"storage"`
	Presentation  PresentationConfig `yaml:"presentation"`
	Ingest        IngestConfig       `yaml:"ingest"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// Backend names accepted by storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultSlot is the persisted slot key; it matches the key used by earlier
// releases so existing decks keep loading.
const DefaultSlot = "presentation_slides_v1"

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Storage:       StorageConfig{Backend: BackendFile, Dir: "", Slot: DefaultSlot, MaxBackups: 5},
		Presentation:  PresentationConfig{IntroMs: 6500, Renderer: "tui"},
		Ingest:        IngestConfig{MaxImageBytes: 2 << 20},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvStorageBackend = "SLD_STORAGE_BACKEND"
	EnvDataDir        = "SLD_DATA_DIR"
	EnvSlot           = "SLD_SLOT"
	EnvIntroMs        = "SLD_INTRO_MS"
	EnvRenderer       = "SLD_RENDERER"
	EnvMaxImageBytes  = "SLD_MAX_IMAGE_BYTES"
	EnvConfigPath     = "SLD_CONFIG"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "SLD_LOG_LEVEL"
	EnvLogFormat = "SLD_LOG_FORMAT"
	EnvLogSource = "SLD_LOG_SOURCE"
	EnvLogFile   = "SLD_LOG_FILE"
)

// ConfigPath returns the per-user config file path. SLD_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base, err := userDir(configRoot)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir resolves the directory holding the persisted deck.
func (c AppConfig) DataDir() (string, error) {
	if d := strings.TrimSpace(c.Storage.Dir); d != "" {
		return d, nil
	}
	return userDir(dataRoot)
}

type dirKind int

const (
	configRoot dirKind = iota
	dataRoot
)

func userDir(kind dirKind) (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SlideDeck")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SlideDeck")
	default: // linux and others
		home := os.Getenv("HOME")
		if kind == dataRoot {
			if x := os.Getenv("XDG_DATA_HOME"); x != "" {
				return filepath.Join(x, "slidedeck"), nil
			}
			return filepath.Join(home, ".local", "share", "slidedeck"), nil
		}
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			return filepath.Join(x, "slidedeck"), nil
		}
		if home == "" {
			return "", errors.New("cannot resolve config directory")
		}
		base = filepath.Join(home, ".config", "slidedeck")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	if kind == dataRoot {
		return filepath.Join(base, "data"), nil
	}
	return base, nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing or unreadable file is not an error; the defaults apply.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
			var set explicitKeys
			if err := yaml.Unmarshal(data, &set); err == nil {
				set.apply(&cfg)
			}
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Storage.Backend)); v != "" {
		dst.Storage.Backend = v
	}
	if v := strings.TrimSpace(src.Storage.Dir); v != "" {
		dst.Storage.Dir = v
	}
	if v := strings.TrimSpace(src.Storage.Slot); v != "" {
		dst.Storage.Slot = v
	}
	if src.Storage.MaxBackups != 0 {
		dst.Storage.MaxBackups = src.Storage.MaxBackups
	}
	if src.Presentation.IntroMs != 0 {
		dst.Presentation.IntroMs = src.Presentation.IntroMs
	}
	if v := strings.ToLower(strings.TrimSpace(src.Presentation.Renderer)); v != "" {
		dst.Presentation.Renderer = v
	}
	if src.Ingest.MaxImageBytes > 0 {
		dst.Ingest.MaxImageBytes = src.Ingest.MaxImageBytes
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

// explicitKeys holds the numeric keys for which zero is a meaningful value.
// A nil pointer means the file does not mention the key.
type explicitKeys struct {
	Storage struct {
		MaxBackups *int `yaml:"max_backups"`
	} `yaml:"storage"`
	Presentation struct {
		IntroMs *int `yaml:"intro_ms"`
	} `yaml:"presentation"`
}

func (k explicitKeys) apply(dst *AppConfig) {
	if k.Storage.MaxBackups != nil {
		dst.Storage.MaxBackups = *k.Storage.MaxBackups
	}
	if k.Presentation.IntroMs != nil {
		dst.Presentation.IntroMs = *k.Presentation.IntroMs
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStorageBackend)); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.Storage.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSlot)); v != "" {
		cfg.Storage.Slot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIntroMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Presentation.IntroMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderer)); v != "" {
		cfg.Presentation.Renderer = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxImageBytes)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Ingest.MaxImageBytes = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// envByKey maps dotted config keys to their override variables.
var envByKey = map[string]string{
	"storage.backend":        EnvStorageBackend,
	"storage.dir":            EnvDataDir,
	"storage.slot":           EnvSlot,
	"presentation.intro_ms":  EnvIntroMs,
	"presentation.renderer":  EnvRenderer,
	"ingest.max_image_bytes": EnvMaxImageBytes,
	"logging.level":          EnvLogLevel,
	"logging.format":         EnvLogFormat,
	"logging.source":         EnvLogSource,
	"logging.file":           EnvLogFile,
}

// OverridableKeys lists the dotted keys that accept an environment override, sorted.
func OverridableKeys() []string {
	keys := make([]string, 0, len(envByKey))
	for k := range envByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envByKey[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// IntroDuration returns the intro length; zero disables the intro.
func (p PresentationConfig) IntroDuration() time.Duration {
	if p.IntroMs <= 0 {
		return 0
	}
	return time.Duration(p.IntroMs) * time.Millisecond
}

// Validate reports configuration values the application cannot run with.
func (c AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return errors.New("storage.backend must be one of file, sqlite, memory; got " + strconv.Quote(c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Slot) == "" {
		return errors.New("storage.slot must not be empty")
	}
	switch c.Presentation.Renderer {
	case "tui", "fyne":
	default:
		return errors.New("presentation.renderer must be tui or fyne; got " + strconv.Quote(c.Presentation.Renderer))
	}
	return nil
}
