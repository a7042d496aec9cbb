// Package models defines the audit store schema: one Run row per engine
// invocation and one FileResult row per scanned file.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one engine invocation over a set of paths.
type Run struct {
	ID        uint      `gorm:"primaryKey"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	// Operations holds the requested operation names as a JSON array.
	Operations datatypes.JSON `gorm:"type:jsonb"`

	// Statistics, filled when the run completes
	Scanned int `gorm:"default:0"`
	Patched int `gorm:"default:0"`

	Files []FileResult `gorm:"foreignKey:RunID"`
}

// FileResult represents the outcome of patching a single file.
type FileResult struct {
	ID    uint   `gorm:"primaryKey"`
	RunID uint   `gorm:"index"`
	Path  string `gorm:"type:varchar(512);not null"`

	Changed bool `gorm:"default:false"`

	// Applied holds the names of the rules that modified the file;
	// Diagnostics the surviving-idiom warnings. Both as JSON arrays.
	Applied     datatypes.JSON `gorm:"type:jsonb"`
	Diagnostics datatypes.JSON `gorm:"type:jsonb"`

	// Checksums of the content before and after patching
	BaseDigest  string `gorm:"type:varchar(64)"`
	AfterDigest string `gorm:"type:varchar(64)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
