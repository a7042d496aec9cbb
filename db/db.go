// Package db persists audit records of engine runs to SQLite through
// GORM, so batch migrations over large trees can be reviewed after the
// fact.
package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/termfx/sixer/core"
	"github.com/termfx/sixer/models"
)

// Connect opens (or creates) the SQLite database at dsn and runs
// migrations.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the audit tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Run{}, &models.FileResult{})
}

// Store records one engine run. It implements core.AuditSink; RecordFile
// may be called from concurrent workers.
type Store struct {
	db  *gorm.DB
	run *models.Run
	mu  sync.Mutex
}

// BeginRun creates the Run row for this invocation.
func BeginRun(db *gorm.DB, operations []string) (*Store, error) {
	ops, err := json.Marshal(operations)
	if err != nil {
		return nil, err
	}
	run := &models.Run{Operations: ops}
	if err := db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &Store{db: db, run: run}, nil
}

// RecordFile persists the outcome of one file.
func (s *Store) RecordFile(outcome *core.PatchOutcome) error {
	applied, err := json.Marshal(outcome.Applied)
	if err != nil {
		return err
	}
	diagnostics, err := json.Marshal(outcome.Diagnostics)
	if err != nil {
		return err
	}
	result := &models.FileResult{
		RunID:       s.run.ID,
		Path:        outcome.Path,
		Changed:     outcome.Changed(),
		Applied:     applied,
		Diagnostics: diagnostics,
		BaseDigest:  digest(outcome.Original),
		AfterDigest: digest(outcome.Final),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to record file result: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its final statistics.
func (s *Store) FinishRun(report *core.RunReport) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Model(s.run).Updates(map[string]any{
		"ended_at": &now,
		"scanned":  report.Scanned,
		"patched":  report.Patched,
	}).Error
}

func digest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
