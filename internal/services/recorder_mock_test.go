package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"freight-matching-service/internal/domain"
)

type mockRecorder struct{ mock.Mock }

func (m *mockRecorder) RecordValidation(valid bool, kinds []string) { m.Called(valid, kinds) }
func (m *mockRecorder) RecordBatch(orders int, d time.Duration)     { m.Called(orders, d) }
func (m *mockRecorder) RecordCompliance(id string, status string)   { m.Called(id, status) }

func TestAuditRecordsEveryRequirementStatus(t *testing.T) {
	rec := new(mockRecorder)
	rec.On("RecordCompliance", RequirementProfitability, string(StatusWarning)).Once()
	rec.On("RecordCompliance", RequirementProximity, string(StatusPassed)).Once()
	rec.On("RecordCompliance", RequirementCapacity, string(StatusPassed)).Once()
	rec.On("RecordCompliance", RequirementTime, string(StatusPassed)).Once()
	rec.On("RecordCompliance", RequirementContract, string(StatusFailed)).Once()

	reports := newAuditor(WithComplianceRecorder(rec)).ValidateAllRequirements(domain.FleetSnapshot{}, 388.15)

	assert.Len(t, reports, 5)
	rec.AssertExpectations(t)
	rec.AssertNotCalled(t, "RecordBatch", mock.Anything, mock.Anything)
}
