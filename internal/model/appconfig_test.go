package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.Defaults != DefaultSettings() {
		t.Error("defaults should match DefaultSettings")
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentInputs == nil {
		t.Error("RecentInputs should not be nil")
	}
}

func TestNormalizeTheme(t *testing.T) {
	for in, want := range map[string]string{"light": "light", "dark": "dark", "system": "system", "": "system", "neon": "system"} {
		if got := NormalizeTheme(in); got != want {
			t.Errorf("NormalizeTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAddRecentInput(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentInput("a.csv")
	cfg.AddRecentInput("b.csv")
	cfg.AddRecentInput("a.csv")

	if len(cfg.RecentInputs) != 2 {
		t.Fatalf("expected 2 recent inputs, got %v", cfg.RecentInputs)
	}
	if cfg.RecentInputs[0] != "a.csv" || cfg.RecentInputs[1] != "b.csv" {
		t.Errorf("expected a.csv moved to front, got %v", cfg.RecentInputs)
	}
}

func TestAddRecentInputIsBounded(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 15; i++ {
		cfg.AddRecentInput(fmt.Sprintf("file%d.csv", i))
	}
	if len(cfg.RecentInputs) != maxRecentInputs {
		t.Errorf("expected %d recent inputs, got %d", maxRecentInputs, len(cfg.RecentInputs))
	}
	if cfg.RecentInputs[0] != "file14.csv" {
		t.Errorf("expected newest first, got %s", cfg.RecentInputs[0])
	}
}
