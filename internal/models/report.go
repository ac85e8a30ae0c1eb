package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Report statuses.
const (
	ReportStatusNew      = "new"
	ReportStatusFlagged  = "flagged"
	ReportStatusResolved = "resolved"
)

// Report is a complaint a user files against their chat partner. Reports
// are handled out-of-band by moderators; they never gate message delivery.
type Report struct {
	gorm.Model

	// ReporterID is the anonymous id of the user filing the report.
	ReporterID string `gorm:"type:text;not null"`
	// ReportedID is the anonymous id of the reported partner.
	ReportedID string `gorm:"type:text;not null;index"`
	// RoomID is the room the reported behaviour happened in.
	RoomID string `gorm:"type:text;not null"`
	// Reasons are the selected complaint categories, e.g. "harassment".
	Reasons pq.StringArray `gorm:"type:text[]"`
	// Severity is the combined weight of the reasons at filing time.
	Severity int
	// Status is "new", "flagged" or "resolved".
	Status string `gorm:"type:text;not null;index"`
}
