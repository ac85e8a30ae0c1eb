// Package report handles complaints users file against a chat partner.
// Reports are stored for moderators and, for heavy ones, pushed to the
// admin alert channel. Nothing here touches the live relay: filing a
// report never blocks or filters message delivery.
package report

import (
	"log"

	"studyzen/backend/internal/analysis"
	"studyzen/backend/internal/config"
	"studyzen/backend/internal/models"
)

// ReportStore is the slice of the storage surface this package needs, kept
// narrow so the service can be tested against a small double.
type ReportStore interface {
	SaveReport(report *models.Report) error
}

// Alerter pushes a filed report to whoever watches for them.
type Alerter interface {
	ReportFiled(r *models.Report)
}

// Service contains the report-handling business logic.
type Service struct {
	Storage ReportStore
	Alerts  Alerter
}

// NewService creates a report service. alerts may be nil when no alert
// channel is configured.
func NewService(s ReportStore, alerts Alerter) *Service {
	return &Service{Storage: s, Alerts: alerts}
}

// HandleReport scores, stores and announces a new report.
func (s *Service) HandleReport(r *models.Report) error {
	r.Severity = analysis.Score(r.Reasons)
	r.Status = models.ReportStatusNew
	if r.Severity >= config.ReportFlagThreshold {
		r.Status = models.ReportStatusFlagged
	}

	if err := s.Storage.SaveReport(r); err != nil {
		return err
	}

	if s.Alerts != nil {
		s.Alerts.ReportFiled(r)
	}

	log.Printf("report filed against %s in room %s (severity %d, status %s)",
		r.ReportedID, r.RoomID, r.Severity, r.Status)
	return nil
}
