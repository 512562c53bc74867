package main

import (
	"Terra3D/internal/logger"
	"Terra3D/internal/terrain"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// exportConfig mirrors the flag set so a batch export can be replayed
// from a file.
type exportConfig struct {
	Terrain terrain.Config `json:"terrain"`
	Seed    int64          `json:"seed"`
}

// loadExportConfig overlays a JSON config onto cfg. A missing file is
// not an error: the current settings are written there as a starting
// point instead.
func loadExportConfig(path string, cfg *exportConfig) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Log.Info("No config file found, writing defaults", zap.String("path", path))
		return saveExportConfig(path, *cfg)
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func saveExportConfig(path string, cfg exportConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
