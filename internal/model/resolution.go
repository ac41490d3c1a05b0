package model

import (
	"time"

	"gorm.io/gorm"
)

type ResolveStatus string

const (
	StatusApplied ResolveStatus = "APPLIED"
	StatusSkipped ResolveStatus = "SKIPPED"
	StatusFailed  ResolveStatus = "FAILED"
)

type Resolution struct {
	gorm.Model
	ConflictPath string        `gorm:"not null"`
	OriginalPath string        `gorm:"not null"`
	Disposition  Disposition   `gorm:"not null"`
	Status       ResolveStatus `gorm:"not null"`
	ErrMsg       string
	ConflictTime time.Time `gorm:"not null"`
	ResolvedAt   time.Time `gorm:"not null"`
}
