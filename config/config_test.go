package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `storage:
  path: "/tmp/kennel.db"
fatigue:
  hard_day_threshold_km: 20
  weight_km_7d: 0.6
  weight_km_3d: 0.3
  weight_last_day: 0.1
  streak_penalty_per_day: 12
scoring:
  conflict_penalty: 9000
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  client_id: "kp"
  topic_base: "kennel/out"
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
api:
  addr: ":8085"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"storage.path", cfg.Storage.Path, "/tmp/kennel.db"},
		{"hard_day_threshold_km", cfg.Fatigue.HardDayThresholdKm, 20.0},
		{"weight_km_7d", cfg.Fatigue.WeightKm7, 0.6},
		{"streak_penalty_per_day", cfg.Fatigue.StreakPenaltyPerDay, 12.0},
		{"conflict_penalty", cfg.Scoring.ConflictPenalty, 9000.0},
		{"pair_split_penalty default", cfg.Scoring.PairSplitPenalty, 80.0},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.topic_base", cfg.MQTT.TopicBase, "kennel/out"},
		{"prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"api.addr", cfg.API.Addr, ":8085"},
		{"lookback default", cfg.Fatigue.LookbackDays7, 7},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KP_API__ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":9999" {
		t.Errorf("api.addr = %s, want env override :9999", cfg.API.Addr)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoad_InvalidWindows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "fatigue:\n  lookback_days_3: 9\n  lookback_days_7: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for inverted windows")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Storage.Path != "kennelplan.db" {
		t.Errorf("storage path = %s", cfg.Storage.Path)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api addr = %s", cfg.API.Addr)
	}
	if cfg.Fatigue.WeightKm7 != 0.55 {
		t.Errorf("weight km7 = %v", cfg.Fatigue.WeightKm7)
	}
}
