package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/registry"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	p := cfg.Parameters
	if p.ExitSpeed != 50 || p.AttractionGain != 200 || p.MaxSpeed != 150 ||
		p.ObstacleStrength != 100 || p.ObstacleRadius != 150 || p.ArrivalDistance != 20 || p.EntityRadius != 10 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if got := cfg.DeltaTime(); got != 1.0/24 {
		t.Errorf("DeltaTime = %v", got)
	}
}

func TestParseConfig_KeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"frameRate": 30, "parameters": {"maxSpeed": 120, "coastFrames": 5}}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.FrameRate != 30 || cfg.Parameters.MaxSpeed != 120 || cfg.Parameters.CoastFrames != 5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxFrames != 600 || cfg.Parameters.AttractionGain != 200 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"broken json", `{"frameRate": `},
		{"unknown field", `{"fps": 24}`},
		{"zero frame rate", `{"frameRate": 0}`},
		{"negative gain", `{"parameters": {"attractionGain": -1}}`},
		{"fractional coast", `{"parameters": {"coastFrames": 1.5}}`},
		{"tunneling", `{"frameRate": 10, "parameters": {"maxSpeed": 300, "arrivalDistance": 20}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.doc)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestValidate_TunnelingGuard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parameters.ArrivalDistance = cfg.Parameters.MaxSpeed/cfg.FrameRate - 0.01
	err := cfg.Validate()
	var pe *ParameterError
	if !errors.As(err, &pe) || pe.Field != "arrivalDistance" {
		t.Fatalf("err = %v; want arrivalDistance ParameterError", err)
	}
	if !errors.Is(err, registry.ErrConfiguration) {
		t.Error("ParameterError must match registry.ErrConfiguration")
	}

	cfg.Parameters.ArrivalDistance = cfg.Parameters.MaxSpeed / cfg.FrameRate
	if err := cfg.Validate(); err != nil {
		t.Errorf("arrivalDistance == maxSpeed/frameRate must be accepted: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"maxFrames": 42, "parallel": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxFrames != 42 || !cfg.Parallel {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
