package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueAt_Boundary(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	exactly := now.AddDate(0, 0, -OverdueAfterDays)
	dayLess := now.AddDate(0, 0, -(OverdueAfterDays - 1))
	dayMore := now.AddDate(0, 0, -(OverdueAfterDays + 1))

	req := Request{Status: RequestPending, SendDate: &exactly}
	assert.True(t, req.OverdueAt(now), "exactly 25 days old is overdue")

	req.SendDate = &dayLess
	assert.False(t, req.OverdueAt(now), "24 days old is not overdue")

	req.SendDate = &dayMore
	assert.True(t, req.OverdueAt(now))
}

func TestOverdueAt_OnlyPending(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -40)

	for _, status := range []string{RequestCompleted, RequestRejected} {
		req := Request{Status: status, SendDate: &old}
		assert.False(t, req.OverdueAt(now), status)
	}

	req := Request{Status: RequestPending}
	assert.False(t, req.OverdueAt(now), "no send date, never overdue")
}

func TestApplyStatus_CompletionDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	req := Request{Status: RequestPending}

	require.NoError(t, req.ApplyStatus(RequestCompleted, now))
	require.NotNil(t, req.CompletionDate)
	assert.Equal(t, now, *req.CompletionDate)

	// moving back out of completed clears the stamp
	require.NoError(t, req.ApplyStatus(RequestPending, now))
	assert.Nil(t, req.CompletionDate)

	// an existing stamp is preserved on completion
	stamp := now.AddDate(0, 0, -2)
	req.CompletionDate = &stamp
	require.NoError(t, req.ApplyStatus(RequestCompleted, now))
	assert.Equal(t, stamp, *req.CompletionDate)
}

func TestApplyStatus_Invalid(t *testing.T) {
	req := Request{Status: RequestPending}
	err := req.ApplyStatus("ΟΛΟΚΛΗΡΩΜΕΝΟ", time.Now())
	assert.Error(t, err)
	assert.Equal(t, RequestPending, req.Status)
}

func TestValidateRequesterRefs(t *testing.T) {
	req := Request{CitizenID: "c1", MilitaryPersonnelID: "m1"}
	assert.Error(t, req.ValidateRequesterRefs())

	req = Request{CitizenID: "c1"}
	assert.NoError(t, req.ValidateRequesterRefs())

	req = Request{}
	assert.NoError(t, req.ValidateRequesterRefs(), "anonymous walk-in allowed")
}
