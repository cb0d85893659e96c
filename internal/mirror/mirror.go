// Package mirror keeps an Excel workbook in sync with the backing table.
//
// The workbook location lives in a small JSON side file. When that file is
// absent, mirroring is disabled. Mirror failures are logged and counted but
// never reported to the caller: a failed mirror must not fail the data
// operation that triggered it.
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmynk/hourbook/internal/metrics"
	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/spreadsheet"
)

// Config is the content of the side configuration file.
type Config struct {
	ExcelFilePath string `json:"excel_file_path"`
}

// LoadConfig reads the side configuration at path.
// A missing file yields an empty Config and no error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read mirror config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse mirror config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mirror config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mirror config: %w", err)
	}
	return nil
}

// Mirror writes the workbook configured in its side file after every change.
type Mirror struct {
	configPath string
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu   sync.Mutex
	path string
}

// New creates a Mirror backed by the side file at configPath. A config that
// cannot be read is logged and leaves mirroring disabled.
func New(configPath string, m *metrics.Metrics, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	mr := &Mirror{configPath: configPath, metrics: m, logger: logger}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		logger.Error("Failed to load mirror configuration", "path", configPath, "error", err)
		return mr
	}
	mr.path = cfg.ExcelFilePath
	if mr.path != "" {
		logger.Info("Excel auto-update configured", "workbook", mr.path)
	}
	return mr
}

// Path returns the mirrored workbook path, or "" when mirroring is disabled.
func (m *Mirror) Path() string {
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Configure writes entries to the workbook at path immediately, then
// persists path in the side file and enables mirroring. Unlike Update, it
// reports errors.
func (m *Mirror) Configure(path string, entries []models.Entry) error {
	if err := spreadsheet.WriteWorkbook(path, entries); err != nil {
		return err
	}
	if err := SaveConfig(m.configPath, Config{ExcelFilePath: path}); err != nil {
		return err
	}

	m.mu.Lock()
	m.path = path
	m.mu.Unlock()

	m.logger.Info("Excel auto-update configured", "workbook", path)
	return nil
}

// Update rewrites the mirrored workbook with entries. It does nothing when
// mirroring is disabled and never returns an error.
func (m *Mirror) Update(entries []models.Entry) {
	path := m.Path()
	if path == "" {
		return
	}

	start := time.Now()
	err := spreadsheet.WriteWorkbook(path, entries)
	m.metrics.ObserveMirror(err)
	if err != nil {
		m.logger.Error("Failed to update Excel mirror", "workbook", path, "error", err)
		return
	}
	m.logger.Debug("Excel mirror updated",
		"workbook", path,
		"entries", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
