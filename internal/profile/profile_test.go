package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	// Run somewhere a developer's sitstay.yaml cannot leak in.
	t.Chdir(t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.SerialBaud != 9600 {
		t.Errorf("SerialBaud = %d, want 9600", p.SerialBaud)
	}
	if p.TeleopAddr != ":8090" {
		t.Errorf("TeleopAddr = %q, want :8090", p.TeleopAddr)
	}
	if p.RefDir != "references" {
		t.Errorf("RefDir = %q, want references", p.RefDir)
	}
	if p.Address != "" || p.SerialPort != "" {
		t.Errorf("expected no connection target, got address=%q serial=%q", p.Address, p.SerialPort)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.yaml")
	yaml := `address: quad.example.com:8080
entity_id: tester
api_key: not-a-real-key
teleop_addr: ":9000"
thigh_length_mm: 210
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Address != "quad.example.com:8080" {
		t.Errorf("Address = %q", p.Address)
	}
	if p.EntityID != "tester" || p.APIKey != "not-a-real-key" {
		t.Errorf("credentials = %q / %q", p.EntityID, p.APIKey)
	}
	if p.TeleopAddr != ":9000" {
		t.Errorf("TeleopAddr = %q, want :9000", p.TeleopAddr)
	}
	if p.SerialBaud != 9600 {
		t.Errorf("SerialBaud default = %d, want 9600", p.SerialBaud)
	}

	cfg := p.PostureConfig()
	if cfg.Geometry.ThighLengthMm != 210 {
		t.Errorf("thigh override = %.1f, want 210", cfg.Geometry.ThighLengthMm)
	}
	if cfg.Geometry.ShankLengthMm != 200 {
		t.Errorf("shank length = %.1f, want stock 200", cfg.Geometry.ShankLengthMm)
	}
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit profile")
	}
}
