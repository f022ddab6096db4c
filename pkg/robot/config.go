package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "leaderarm.json"

// DefaultArmID names the leader arm in the config file.
const DefaultArmID = "so101_leader"

// Config holds the leader arm configuration
type Config struct {
	ID          string      `json:"id"`
	Port        string      `json:"port"`
	Calibration Calibration `json:"calibration,omitempty"`
}

// IsCalibrated returns true if the arm has calibration data
func (c *Config) IsCalibrated() bool {
	return len(c.Calibration) > 0
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = DefaultArmID
	}
	return &cfg, nil
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
