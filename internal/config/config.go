/*
 * Copyright (c) 2025 by the symbolrender authors.
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
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
// The render core never reads this; the CLI translates it into render.Options.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type RenderConfig struct {
	Magnification float64 `yaml:"magnification"`
	Margin        int     `yaml:"margin"`
	Ink           string  `yaml:"ink"`   // "RRGGBB" or "#RRGGBB"
	Paper         string  `yaml:"paper"` // "RRGGBB" or "#RRGGBB"
	FontFile      string  `yaml:"font_file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults: 1:1 scale, black ink on
// white paper, no margin.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render:        RenderConfig{Magnification: 1.0, Margin: 0, Ink: "000000", Paper: "FFFFFF", FontFile: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvMagnification = "SYR_MAGNIFICATION"
	EnvMargin        = "SYR_MARGIN"
	EnvInk           = "SYR_INK"
	EnvPaper         = "SYR_PAPER"
	EnvFontFile      = "SYR_FONT_FILE"
	// EnvLogLevel logging envs
	EnvLogLevel  = "SYR_LOG_LEVEL"
	EnvLogFormat = "SYR_LOG_FORMAT"
	EnvLogSource = "SYR_LOG_SOURCE"
	EnvLogFile   = "SYR_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SymbolRender")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SymbolRender")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "symbolrender")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit config file path. A missing file is
// not an error; defaults plus env overrides apply.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
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
	// render
	if src.Render.Magnification != 0 {
		dst.Render.Magnification = src.Render.Magnification
	}
	if src.Render.Margin != 0 {
		dst.Render.Margin = src.Render.Margin
	}
	if strings.TrimSpace(src.Render.Ink) != "" {
		dst.Render.Ink = strings.TrimSpace(src.Render.Ink)
	}
	if strings.TrimSpace(src.Render.Paper) != "" {
		dst.Render.Paper = strings.TrimSpace(src.Render.Paper)
	}
	if strings.TrimSpace(src.Render.FontFile) != "" {
		dst.Render.FontFile = strings.TrimSpace(src.Render.FontFile)
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

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMagnification)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Render.Magnification = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMargin)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Render.Margin = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvInk)); v != "" {
		cfg.Render.Ink = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPaper)); v != "" {
		cfg.Render.Paper = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Render.FontFile = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "render.magnification":
		if os.Getenv(EnvMagnification) != "" {
			return EnvMagnification, true
		}
	case "render.margin":
		if os.Getenv(EnvMargin) != "" {
			return EnvMargin, true
		}
	case "render.ink":
		if os.Getenv(EnvInk) != "" {
			return EnvInk, true
		}
	case "render.paper":
		if os.Getenv(EnvPaper) != "" {
			return EnvPaper, true
		}
	case "render.font_file":
		if os.Getenv(EnvFontFile) != "" {
			return EnvFontFile, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
