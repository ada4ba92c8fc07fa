package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
)

func aggregateFilter() ComplaintFilter {
	day := report.Date{Year: 2025, Month: time.June, Day: 16}
	return ComplaintFilter{
		Status:      ptr(domain.ComplaintStatusResolved),
		Priority:    ptr(domain.ComplaintPriorityHigh),
		SubmittedOn: &day,
	}
}

const aggregateWhere = "1=1 AND status=$1 AND priority=$2" +
	" AND (submitted_at AT TIME ZONE $3)::date = $4::date"

var aggregateArgs = []any{"resolved", "high", "UTC", "2025-06-16"}

func TestTallyQuery(t *testing.T) {
	query, args := tallyQuery(aggregateFilter())
	assert.Equal(t,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE status='open'), COUNT(*) FILTER (WHERE status='resolved')"+
			" FROM complaints WHERE "+aggregateWhere,
		query)
	assert.Equal(t, aggregateArgs, args)

	query, args = tallyQuery(ComplaintFilter{})
	assert.True(t, strings.HasSuffix(query, " FROM complaints WHERE 1=1"))
	assert.Empty(t, args)
}

func TestGroupCountsQuery(t *testing.T) {
	query, args := groupCountsQuery(aggregateFilter())
	assert.Equal(t,
		"SELECT assigned_department, priority, COUNT(*), COUNT(*) FILTER (WHERE status='open'), COUNT(*) FILTER (WHERE status='resolved')"+
			" FROM complaints WHERE "+aggregateWhere+
			" GROUP BY assigned_department, priority"+
			` ORDER BY assigned_department COLLATE "C", priority COLLATE "C"`,
		query)
	assert.Equal(t, aggregateArgs, args)
}

func TestAverageTurnaroundQuery(t *testing.T) {
	query, args := averageTurnaroundQuery(aggregateFilter())
	assert.Equal(t,
		"SELECT EXTRACT(EPOCH FROM AVG(resolved_at - submitted_at))::float8 FROM complaints WHERE "+
			aggregateWhere+" AND status='resolved' AND resolved_at IS NOT NULL",
		query)
	assert.Equal(t, aggregateArgs, args)

	// The resolved restriction applies even when the caller filters nothing.
	query, args = averageTurnaroundQuery(ComplaintFilter{})
	assert.True(t, strings.HasSuffix(query, "WHERE 1=1 AND status='resolved' AND resolved_at IS NOT NULL"))
	assert.Empty(t, args)
}
