package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"investrack/internal/models"
)

// JSONStore keeps settings and history in two JSON files, each rewritten whole on save.
type JSONStore struct {
	settingsPath string
	historyPath  string
	defaults     models.Settings
	logger       *zap.Logger
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store over the given files. The files need not exist.
func NewJSONStore(settingsPath, historyPath string, defaults models.Settings, logger *zap.Logger) *JSONStore {
	return &JSONStore{
		settingsPath: settingsPath,
		historyPath:  historyPath,
		defaults:     defaults.Normalize(),
		logger:       logger.Named("json-store"),
	}
}

func (s *JSONStore) LoadSettings(_ context.Context) models.Settings {
	var doc settingsDocument
	found, err := readJSON(s.settingsPath, &doc)
	if err != nil {
		s.logger.Warn("Ignoring unreadable settings file", zap.String("path", s.settingsPath), zap.Error(err))
		return s.defaults.Normalize()
	}
	if !found {
		return s.defaults.Normalize()
	}
	return doc.settings(s.defaults)
}

func (s *JSONStore) SaveSettings(_ context.Context, settings models.Settings) {
	if err := writeJSON(s.settingsPath, newSettingsDocument(settings)); err != nil {
		s.logger.Warn("Failed to save settings", zap.String("path", s.settingsPath), zap.Error(err))
	}
}

func (s *JSONStore) LoadHistory(_ context.Context) []models.Snapshot {
	var raw []json.RawMessage
	found, err := readJSON(s.historyPath, &raw)
	if err != nil {
		s.logger.Warn("Ignoring unreadable history file", zap.String("path", s.historyPath), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}

	history := make([]models.Snapshot, 0, len(raw))
	for i, entry := range raw {
		var snap models.Snapshot
		if err := json.Unmarshal(entry, &snap); err != nil {
			s.logger.Warn("Skipping malformed history entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		history = append(history, snap)
	}
	return history
}

func (s *JSONStore) AppendHistory(_ context.Context, snap models.Snapshot, existing []models.Snapshot) []models.Snapshot {
	history := make([]models.Snapshot, 0, len(existing)+1)
	history = append(history, existing...)
	history = append(history, snap)

	if err := writeJSON(s.historyPath, history); err != nil {
		s.logger.Warn("Failed to save history", zap.String("path", s.historyPath), zap.Error(err))
	}
	return history
}

// Close is a no-op for file-based storage.
func (s *JSONStore) Close() error {
	return nil
}

// readJSON decodes path into v. A missing file is reported as found == false.
func readJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
