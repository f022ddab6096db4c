package robot

import (
	"path/filepath"
	"testing"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderarm.json")

	cfg := &Config{
		ID:   "my_awesome_leader_arm",
		Port: "/dev/ttyACM0",
		Calibration: Calibration{
			ShoulderPan: MotorCalibration{ID: 1, RangeMin: 800, RangeMax: 3200},
			Gripper:     MotorCalibration{ID: 6, RangeMin: 1900, RangeMax: 3000},
		},
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}

	if got.ID != cfg.ID {
		t.Errorf("ID = %q, want %q", got.ID, cfg.ID)
	}
	if got.Port != cfg.Port {
		t.Errorf("Port = %q, want %q", got.Port, cfg.Port)
	}
	if !got.IsCalibrated() {
		t.Error("IsCalibrated() = false after loading calibration")
	}
	if got.Calibration[ShoulderPan].RangeMax != 3200 {
		t.Errorf("calibration not round-tripped: %+v", got.Calibration[ShoulderPan])
	}
}

func TestConfig_DefaultID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderarm.json")

	cfg := &Config{Port: "/dev/ttyACM0"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if got.ID != DefaultArmID {
		t.Errorf("ID = %q, want default %q", got.ID, DefaultArmID)
	}
}

func TestConfig_IsCalibrated(t *testing.T) {
	cfg := &Config{Port: "/dev/ttyACM0"}
	if cfg.IsCalibrated() {
		t.Error("empty calibration should not count as calibrated")
	}
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
