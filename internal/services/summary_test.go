package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reportsWith(statuses ...Status) []ValidationReport {
	out := make([]ValidationReport, len(statuses))
	for i, s := range statuses {
		out[i] = ValidationReport{RequirementID: string(rune('1' + i)), Status: s}
	}
	return out
}

func TestGenerateSummaryReport(t *testing.T) {
	v := newAuditor()

	cases := []struct {
		name     string
		statuses []Status
		want     OverallStatus
		passRate float64
	}{
		{"all passed", []Status{StatusPassed, StatusPassed}, OverallPassed, 100},
		{"one warning", []Status{StatusPassed, StatusWarning, StatusPassed, StatusPassed}, OverallPassedWithWarnings, 75},
		{"failure wins", []Status{StatusWarning, StatusFailed, StatusPassed, StatusPassed, StatusPassed}, OverallFailed, 60},
		{"empty", nil, OverallPassed, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := v.GenerateSummaryReport(reportsWith(tc.statuses...))
			assert.Equal(t, tc.want, s.OverallStatus)
			assert.Equal(t, len(tc.statuses), s.TotalRequirements)
			assert.InDelta(t, tc.passRate, s.PassRatePercent, 1e-9)
			assert.Equal(t, s.TotalRequirements, s.PassedCount+s.WarningCount+s.FailedCount)
			assert.Len(t, s.Requirements, len(tc.statuses))
			assert.Equal(t, auditTime, s.ValidationTimestamp)
		})
	}
}
