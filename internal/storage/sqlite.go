package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"investrack/internal/models"
)

// SQLiteStore keeps settings and history in a SQLite database.
type SQLiteStore struct {
	db       *gorm.DB
	defaults models.Settings
	logger   *zap.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database at dsn and migrates the schema.
func NewSQLiteStore(dsn string, defaults models.Settings, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; an in-memory DSN is also per-connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:       db,
		defaults: defaults.Normalize(),
		logger:   logger.Named("sqlite-store"),
	}, nil
}

// AutoMigrate creates or updates the tables for settings and history.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.HoldingRecord{}, &models.SettingsRecord{}, &models.SnapshotRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) models.Settings {
	settings, err := s.readSettings(ctx)
	if err != nil {
		s.logger.Warn("Ignoring unreadable settings", zap.Error(err))
		return s.defaults.Normalize()
	}
	return settings
}

func (s *SQLiteStore) readSettings(ctx context.Context) (models.Settings, error) {
	db := s.db.WithContext(ctx)

	var doc settingsDocument

	var rec models.SettingsRecord
	err := db.First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	default:
		doc.FXRate = &rec.FXRate
		doc.TotalInvested = &rec.TotalInvested
	}

	var holdings []models.HoldingRecord
	if err := db.Find(&holdings).Error; err != nil {
		return models.Settings{}, fmt.Errorf("failed to read holdings: %w", err)
	}
	doc.Holdings = make(map[string]float64, len(holdings))
	for _, h := range holdings {
		doc.Holdings[h.Symbol] = h.Quantity
	}

	return doc.settings(s.defaults), nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) {
	if err := s.writeSettings(ctx, settings.Normalize()); err != nil {
		s.logger.Warn("Failed to save settings", zap.Error(err))
	}
}

func (s *SQLiteStore) writeSettings(ctx context.Context, settings models.Settings) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.SettingsRecord
		err := tx.First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.SettingsRecord{FXRate: settings.FXRate, TotalInvested: settings.TotalInvested}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create settings: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		} else if err := tx.Model(&rec).Updates(map[string]any{
			"fx_rate":        settings.FXRate,
			"total_invested": settings.TotalInvested,
		}).Error; err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		for _, sym := range models.Symbols() {
			qty := settings.Holdings[sym]
			var h models.HoldingRecord
			err := tx.Where(&models.HoldingRecord{Symbol: sym.String()}).First(&h).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h = models.HoldingRecord{Symbol: sym.String(), Quantity: qty}
				if err := tx.Create(&h).Error; err != nil {
					return fmt.Errorf("failed to create holding '%s': %w", sym, err)
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read holding '%s': %w", sym, err)
			}
			if err := tx.Model(&h).Update("quantity", qty).Error; err != nil {
				return fmt.Errorf("failed to update holding '%s': %w", sym, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadHistory(ctx context.Context) []models.Snapshot {
	var records []models.SnapshotRecord
	if err := s.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		s.logger.Warn("Ignoring unreadable history", zap.Error(err))
		return nil
	}

	history := make([]models.Snapshot, len(records))
	for i, r := range records {
		history[i] = models.Snapshot{Timestamp: r.Timestamp.UTC(), ValueGHS: r.ValueGHS}
	}
	return history
}

func (s *SQLiteStore) AppendHistory(ctx context.Context, snap models.Snapshot, existing []models.Snapshot) []models.Snapshot {
	rec := models.SnapshotRecord{Timestamp: snap.Timestamp.UTC(), ValueGHS: snap.ValueGHS}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.logger.Warn("Failed to record snapshot", zap.Error(err))
	}

	history := make([]models.Snapshot, 0, len(existing)+1)
	history = append(history, existing...)
	return append(history, snap)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
