package report

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/facility-complaints/internal/domain"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

func requireBadRequest(t *testing.T, err error, message string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, message, de.Message)
	return de
}

func TestParseDepartmentPriorityQuery(t *testing.T) {
	q, err := ParseDepartmentPriorityQuery("ELEC", "high")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintPriorityHigh, q.Priority)

	_, err = ParseDepartmentPriorityQuery("", "high")
	requireBadRequest(t, err, "Both department and priority parameters are required")
	_, err = ParseDepartmentPriorityQuery("ELEC", "")
	requireBadRequest(t, err, "Both department and priority parameters are required")
	_, err = ParseDepartmentPriorityQuery("ELEC", "urgent")
	requireBadRequest(t, err, "Invalid priority value")
}

func TestParseStatsQuery(t *testing.T) {
	q, err := ParseStatsQuery(RawStatsQuery{})
	require.NoError(t, err)
	assert.Nil(t, q.Priority)
	assert.Nil(t, q.Department)
	assert.Nil(t, q.Status)
	assert.Nil(t, q.SubmittedOn)

	q, err = ParseStatsQuery(RawStatsQuery{Priority: "low", Department: "NOPE", Status: "weird", SubmittedAt: "2025-06-16"})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintPriorityLow, *q.Priority)
	assert.Equal(t, "NOPE", *q.Department)
	assert.Equal(t, domain.ComplaintStatus("weird"), *q.Status)
	assert.Equal(t, "2025-06-16", q.SubmittedOn.String())

	_, err = ParseStatsQuery(RawStatsQuery{Priority: "urgent"})
	requireBadRequest(t, err, "Invalid priority value")

	_, err = ParseStatsQuery(RawStatsQuery{SubmittedAt: "16/06/2025"})
	de := requireBadRequest(t, err, "Invalid date or time format")
	assert.Contains(t, de.Details, "format_guide")
}

func TestFiltersApplied(t *testing.T) {
	got := RawStatsQuery{Priority: "high"}.FiltersApplied()
	assert.Equal(t, "high", got["priority"])
	assert.Nil(t, got["department"])

	tat := RawTATQuery{Date: "2025-06-16"}.FiltersApplied()
	assert.Equal(t, "2025-06-16", tat["date"])
	assert.Nil(t, tat["start_time"])
}

func TestResolveTATWindow_DateOnly(t *testing.T) {
	w, err := ResolveTATWindow(RawTATQuery{Date: "2025-06-16"}, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, w.On)
	assert.Equal(t, "2025-06-16", w.On.String())
	assert.Nil(t, w.From)
	assert.Nil(t, w.ClockFrom)
}

func TestResolveTATWindow_DateWithBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	w, err := ResolveTATWindow(RawTATQuery{Date: "2025-06-16", StartTime: "09:00"}, loc)
	require.NoError(t, err)
	require.NotNil(t, w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, loc), *w.From)
	assert.Equal(t, time.Date(2025, 6, 16, 23, 59, 0, 0, loc), *w.To)
	assert.Nil(t, w.On)

	w, err = ResolveTATWindow(RawTATQuery{Date: "2025-06-16", EndTime: "12:15"}, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), *w.From)
	assert.Equal(t, time.Date(2025, 6, 16, 12, 15, 0, 0, loc), *w.To)
}

func TestResolveTATWindow_ClockOnly(t *testing.T) {
	w, err := ResolveTATWindow(RawTATQuery{EndTime: "18:00", Priority: "medium"}, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, w.ClockFrom)
	assert.Equal(t, StartOfDay, *w.ClockFrom)
	assert.Equal(t, Clock{Hour: 18}, *w.ClockTo)
	assert.Equal(t, domain.ComplaintPriorityMedium, *w.Priority)
	assert.Nil(t, w.From)
	assert.Nil(t, w.On)
}

func TestResolveTATWindow_NoFilters(t *testing.T) {
	w, err := ResolveTATWindow(RawTATQuery{}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Window{}, w)
}

func TestResolveTATWindow_Errors(t *testing.T) {
	_, err := ResolveTATWindow(RawTATQuery{Date: "2025-06-16", StartTime: "25:00"}, time.UTC)
	de := requireBadRequest(t, err, "Invalid date or time format")
	assert.Contains(t, de.Details, "example")
	assert.Contains(t, de.Details, "format_guide")
	assert.Contains(t, de.Details, "message")

	_, err = ResolveTATWindow(RawTATQuery{Date: "June 16"}, time.UTC)
	requireBadRequest(t, err, "Invalid date or time format")

	_, err = ResolveTATWindow(RawTATQuery{EndTime: "noon"}, time.UTC)
	requireBadRequest(t, err, "Invalid date or time format")

	_, err = ResolveTATWindow(RawTATQuery{Priority: "critical"}, time.UTC)
	requireBadRequest(t, err, "Invalid priority value")
}
