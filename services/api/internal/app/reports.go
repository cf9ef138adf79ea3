package app

import (
	"fmt"
	"strings"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
)

// CreateReport queues a moderation report against a question/answer/card.
func (a *App) CreateReport(reporterID string, entityType domain.EntityType, entityID, reason string) (domain.Report, error) {
	if _, ok := domain.ParseEntityType(string(entityType)); !ok {
		return domain.Report{}, ErrInvalidEntityType
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Report{}, ErrReasonRequired
	}
	if err := a.targetExists(entityType, entityID); err != nil {
		return domain.Report{}, err
	}
	report := domain.Report{
		ID:         util.NewID(),
		ReporterID: reporterID,
		EntityType: entityType,
		EntityID:   entityID,
		Reason:     reason,
		Status:     domain.ReportOpen,
		CreatedAt:  a.now(),
	}
	if err := a.store.SaveReport(report); err != nil {
		return domain.Report{}, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// ListReports returns all reports for admin review, newest first.
func (a *App) ListReports(actor domain.User) ([]domain.Report, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	reports, err := a.store.ListReports()
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// UpdateReportStatus moves a report through moderation.
func (a *App) UpdateReportStatus(actor domain.User, reportID string, status domain.ReportStatus) (domain.Report, error) {
	if !actor.IsAdmin {
		return domain.Report{}, ErrForbidden
	}
	if _, ok := domain.ParseReportStatus(string(status)); !ok {
		return domain.Report{}, ErrInvalidReportStatus
	}
	report, ok, err := a.store.GetReport(reportID)
	if err != nil {
		return domain.Report{}, fmt.Errorf("fetch report: %w", err)
	}
	if !ok {
		return domain.Report{}, ErrNotFound
	}
	report.Status = status
	if err := a.store.SaveReport(report); err != nil {
		return domain.Report{}, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}
