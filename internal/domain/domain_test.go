package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComplaintEnums(t *testing.T) {
	_, ok := ParseComplaintPriority("high")
	assert.True(t, ok)
	_, ok = ParseComplaintPriority("urgent")
	assert.False(t, ok)
	_, ok = ParseComplaintPriority("HIGH")
	assert.False(t, ok)

	_, ok = ParseComplaintStatus("in_progress")
	assert.True(t, ok)
	_, ok = ParseComplaintStatus("")
	assert.False(t, ok)
}

func TestRoomAndRecordStatus(t *testing.T) {
	assert.True(t, RoomStatusMaintenance.Valid())
	assert.False(t, RoomStatus("cleaning").Valid())
	assert.True(t, RecordStatusInactive.Valid())
	assert.False(t, RecordStatus("archived").Valid())
}

func TestComplaintTurnaroundTime(t *testing.T) {
	submitted := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	resolved := submitted.Add(2 * time.Hour)

	c := Complaint{Status: ComplaintStatusResolved, SubmittedAt: submitted, ResolvedAt: &resolved}
	tat, ok := c.TurnaroundTime()
	assert.True(t, ok)
	assert.Equal(t, 2*time.Hour, tat)

	c.Status = ComplaintStatusOpen
	_, ok = c.TurnaroundTime()
	assert.False(t, ok)

	c = Complaint{Status: ComplaintStatusResolved, SubmittedAt: submitted}
	_, ok = c.TurnaroundTime()
	assert.False(t, ok)
}

func TestComplaintTransitionTo(t *testing.T) {
	submitted := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	c := &Complaint{Status: ComplaintStatusOpen, SubmittedAt: submitted}
	nurse := "nurse"

	c.TransitionTo(ComplaintStatusInProgress, "on it", &nurse, submitted.Add(time.Minute))
	assert.Nil(t, c.ResolvedAt)
	assert.Equal(t, "on it", c.Remarks)

	first := submitted.Add(time.Hour)
	c.TransitionTo(ComplaintStatusResolved, "", &nurse, first)
	assert.Equal(t, first, *c.ResolvedAt)
	assert.Equal(t, "nurse", *c.ResolvedBy)
	assert.True(t, c.IsResolved())

	second := submitted.Add(2 * time.Hour)
	c.TransitionTo(ComplaintStatusResolved, "again", nil, second)
	assert.Equal(t, second, *c.ResolvedAt)
	assert.Nil(t, c.ResolvedBy)
	tat, ok := c.TurnaroundTime()
	assert.True(t, ok)
	assert.Equal(t, 2*time.Hour, tat)

	c.TransitionTo(ComplaintStatusOpen, "reopened", &nurse, second)
	assert.Nil(t, c.ResolvedAt)
	assert.Nil(t, c.ResolvedBy)
	assert.False(t, c.IsResolved())
}
