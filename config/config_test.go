// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Radio.Address != "127.0.0.1:50002" {
		t.Errorf("default address = %q", cfg.Radio.Address)
	}
	if cfg.Radio.CIVAddress != 0xA4 || cfg.Radio.ControllerAddress != 0xE0 {
		t.Errorf("default CI-V addresses = 0x%02X/0x%02X",
			cfg.Radio.CIVAddress, cfg.Radio.ControllerAddress)
	}
	if cfg.Scope.Width != 950 || cfg.Scope.MaxBuffer != 10000 {
		t.Errorf("default scope settings = %+v", cfg.Scope)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	content := `
radio {
  address   = "10.0.0.7:50002"
  frequency = 145000000
}

scope {
  width    = 475
  span_khz = 100
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Radio.Address != "10.0.0.7:50002" {
		t.Errorf("address = %q", cfg.Radio.Address)
	}
	if cfg.Radio.FrequencyHz != 145_000_000 {
		t.Errorf("frequency = %d", cfg.Radio.FrequencyHz)
	}
	if cfg.Scope.Width != 475 || cfg.Scope.SpanKHz != 100 {
		t.Errorf("scope = %+v", cfg.Scope)
	}
	// Unset values keep their defaults.
	if cfg.Radio.CIVAddress != 0xA4 {
		t.Errorf("civ_address = 0x%02X, want default 0xA4", cfg.Radio.CIVAddress)
	}
	if cfg.Scope.MaxBuffer != 10000 {
		t.Errorf("max_buffer = %d, want default 10000", cfg.Scope.MaxBuffer)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CIVSCOPE_RADIO_ADDRESS", "192.168.1.20:50002")
	t.Setenv("CIVSCOPE_SCOPE_WIDTH", "320")

	cfg := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	if cfg.Radio.Address != "192.168.1.20:50002" {
		t.Errorf("address = %q", cfg.Radio.Address)
	}
	if cfg.Scope.Width != 320 {
		t.Errorf("width = %d", cfg.Scope.Width)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	if cfg.Radio.Address != Default().Radio.Address {
		t.Errorf("missing file must fall back to defaults, got %q", cfg.Radio.Address)
	}
}
