package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hotelier/internal/config"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

const backupPrefix = "hotelier_"

// BackupService периодически снимает копию sqlite-файла и подчищает
// старые снапшоты по retention_days.
type BackupService struct {
	dbPath string
	cfg    config.BackupConfig
	log    zerolog.Logger
}

func NewBackupService(dbPath string, cfg config.BackupConfig, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		dbPath: dbPath,
		cfg:    cfg,
		log:    logger.With().Str("component", "backup").Logger(),
	}
}

func (s *BackupService) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.log.Info().Msg("backups disabled")
		return
	}

	interval := s.interval()
	s.log.Info().Dur("interval", interval).Str("dir", s.cfg.StoragePath).Msg("backup loop started")

	// Первый снапшот сразу, дальше по расписанию
	if err := s.PerformBackup(); err != nil {
		s.log.Error().Err(err).Msg("initial backup failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PerformBackup(); err != nil {
				s.log.Error().Err(err).Msg("scheduled backup failed")
			}
			s.CleanupOldBackups()
		}
	}
}

func (s *BackupService) interval() time.Duration {
	if s.cfg.Schedule == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(s.cfg.Schedule)
	if err != nil {
		s.log.Warn().Err(err).Str("schedule", s.cfg.Schedule).Msg("bad backup schedule, using 24h")
		return 24 * time.Hour
	}
	return d
}

func (s *BackupService) PerformBackup() error {
	if err := os.MkdirAll(s.cfg.StoragePath, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := backupPrefix + time.Now().Format("20060102_150405") + ".db"
	target := filepath.Join(s.cfg.StoragePath, name)

	src, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("open source database: %w", err)
	}
	defer src.Close()

	// VACUUM INTO дает консистентную копию без остановки записи
	if _, err := src.Exec(fmt.Sprintf("VACUUM INTO '%s'", target)); err != nil {
		s.log.Warn().Err(err).Msg("VACUUM INTO failed, copying the file instead")
		if err := copyFile(s.dbPath, target); err != nil {
			return fmt.Errorf("fallback copy: %w", err)
		}
	}

	s.log.Info().Str("path", target).Msg("backup written")
	return nil
}

func (s *BackupService) CleanupOldBackups() {
	if s.cfg.RetentionDays <= 0 {
		return
	}

	entries, err := os.ReadDir(s.cfg.StoragePath)
	if err != nil {
		s.log.Error().Err(err).Msg("read backup dir")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		s.log.Info().Str("file", entry.Name()).Msg("removing expired backup")
		_ = os.Remove(filepath.Join(s.cfg.StoragePath, entry.Name()))
	}
}

func copyFile(from, to string) error {
	source, err := os.Open(from)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(to)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, source)
	return err
}
