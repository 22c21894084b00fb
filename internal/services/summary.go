package services

import "time"

// OverallStatus aggregates requirement statuses.
type OverallStatus string

const (
	OverallPassed             OverallStatus = "PASSED"
	OverallPassedWithWarnings OverallStatus = "PASSED_WITH_WARNINGS"
	OverallFailed             OverallStatus = "FAILED"
)

// RequirementSummary is one line of the summary report.
type RequirementSummary struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// SummaryReport aggregates a set of requirement reports.
type SummaryReport struct {
	OverallStatus       OverallStatus        `json:"overall_status"`
	TotalRequirements   int                  `json:"total_requirements"`
	PassedCount         int                  `json:"passed_count"`
	FailedCount         int                  `json:"failed_count"`
	WarningCount        int                  `json:"warning_count"`
	PassRatePercent     float64              `json:"pass_rate_percent"`
	ValidationTimestamp time.Time            `json:"validation_timestamp"`
	Requirements        []RequirementSummary `json:"requirements_details"`
}

// GenerateSummaryReport counts statuses and derives the overall verdict:
// any failure fails, otherwise any warning passes with warnings.
func (v *FleetComplianceValidator) GenerateSummaryReport(reports []ValidationReport) SummaryReport {
	s := SummaryReport{
		TotalRequirements:   len(reports),
		ValidationTimestamp: v.now(),
		Requirements:        make([]RequirementSummary, 0, len(reports)),
	}

	for _, r := range reports {
		switch r.Status {
		case StatusPassed:
			s.PassedCount++
		case StatusFailed:
			s.FailedCount++
		case StatusWarning:
			s.WarningCount++
		}
		s.Requirements = append(s.Requirements, RequirementSummary{
			ID:          r.RequirementID,
			Status:      r.Status,
			Description: r.Description,
		})
	}

	switch {
	case s.FailedCount > 0:
		s.OverallStatus = OverallFailed
	case s.WarningCount > 0:
		s.OverallStatus = OverallPassedWithWarnings
	default:
		s.OverallStatus = OverallPassed
	}

	if s.TotalRequirements > 0 {
		s.PassRatePercent = float64(s.PassedCount) / float64(s.TotalRequirements) * 100
	}
	return s
}
