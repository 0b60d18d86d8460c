// SPDX-License-Identifier: Apache-2.0

// Package config loads civscope settings from an HCL config file, with
// CIVSCOPE_ environment variables as fallback. Every setting has a
// default; both sources are optional.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RadioConf describes how to reach the radio and how it is addressed
// on the CI-V bus.
type RadioConf struct {
	Address           string `koanf:"address"`
	CIVAddress        byte   `koanf:"civ_address"`
	ControllerAddress byte   `koanf:"controller_address"`
	FrequencyHz       uint64 `koanf:"frequency"`
}

// ScopeConf describes spectrum handling: display width in bins, the
// scope span used for recording metadata, and the extractor's buffer
// bound.
type ScopeConf struct {
	Width     int `koanf:"width"`
	SpanKHz   int `koanf:"span_khz"`
	MaxBuffer int `koanf:"max_buffer"`
}

// Config is the full civscope configuration.
type Config struct {
	Radio RadioConf `koanf:"radio"`
	Scope ScopeConf `koanf:"scope"`
}

// Default returns the built-in configuration: a radio on the local
// network control port with the stock CI-V addresses.
func Default() *Config {
	return &Config{
		Radio: RadioConf{
			Address:           "127.0.0.1:50002",
			CIVAddress:        civ.DefaultRadioAddress,
			ControllerAddress: civ.DefaultControllerAddress,
			FrequencyHz:       civ.DefaultFrequencyHz,
		},
		Scope: ScopeConf{
			Width:     civ.DefaultSpectrumWidth,
			SpanKHz:   50,
			MaxBuffer: civ.DefaultMaxBuffer,
		},
	}
}

// findConfigFile returns the first config file that exists, preferring
// an explicitly given path.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	paths := []string{"/etc/civscope/config.hcl"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config/civscope/config.hcl"))
	}
	paths = append(paths, "./config.hcl")
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			log.Debugf("Found config file: %s", path)
			return path
		}
	}
	return ""
}

// Load reads configuration from path (or the default search locations
// when path is empty), then applies CIVSCOPE_ environment variables on
// top. A missing file is not an error.
func Load(path string) *Config {
	k := koanf.New(".")

	if cfgPath := findConfigFile(path); cfgPath != "" {
		if err := k.Load(file.Provider(cfgPath), hcl.Parser(true)); err != nil {
			log.Errorf("Could not read config file %s: %v", cfgPath, err)
		}
	}

	k.Load(env.Provider("", env.Opt{
		Prefix: "CIVSCOPE_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "CIVSCOPE_"))
			return strings.Replace(key, "_", ".", 1), value
		},
	}), nil)

	cfg := Default()
	if v := k.String("radio.address"); v != "" {
		cfg.Radio.Address = v
	}
	if v := k.Int("radio.civ_address"); v > 0 && v < 256 {
		cfg.Radio.CIVAddress = byte(v)
	}
	if v := k.Int("radio.controller_address"); v > 0 && v < 256 {
		cfg.Radio.ControllerAddress = byte(v)
	}
	if v := k.Int64("radio.frequency"); v > 0 {
		cfg.Radio.FrequencyHz = uint64(v)
	}
	if v := k.Int("scope.width"); v > 0 {
		cfg.Scope.Width = v
	}
	if v := k.Int("scope.span_khz"); v > 0 {
		cfg.Scope.SpanKHz = v
	}
	if v := k.Int("scope.max_buffer"); v > 0 {
		cfg.Scope.MaxBuffer = v
	}
	return cfg
}
