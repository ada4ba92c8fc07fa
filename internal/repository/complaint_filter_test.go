package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
)

func ptr[T any](v T) *T { return &v }

func complaintAt(id string, at time.Time) domain.Complaint {
	return domain.Complaint{
		TicketID:           id,
		RoomNumber:         "101",
		BedNumber:          "B1",
		AssignedDepartment: "ELEC",
		Priority:           domain.ComplaintPriorityHigh,
		Status:             domain.ComplaintStatusOpen,
		Description:        "Fan not working",
		SubmittedAt:        at,
	}
}

func TestParseComplaintOrdering(t *testing.T) {
	assert.Equal(t, DefaultComplaintOrdering, ParseComplaintOrdering(""))
	assert.Equal(t, DefaultComplaintOrdering, ParseComplaintOrdering("bogus"))
	assert.Equal(t, []ComplaintOrder{
		{Field: "priority"},
		{Field: "submitted_at", Desc: true},
	}, ParseComplaintOrdering("priority, -submitted_at,unknown"))
}

func TestComplaintFilter_MatchesFields(t *testing.T) {
	c := complaintAt("TKT-1", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))

	assert.True(t, ComplaintFilter{}.Matches(&c))
	assert.True(t, ComplaintFilter{Department: ptr("ELEC"), Priority: ptr(domain.ComplaintPriorityHigh)}.Matches(&c))
	assert.False(t, ComplaintFilter{Department: ptr("PLUMB")}.Matches(&c))
	assert.False(t, ComplaintFilter{Status: ptr(domain.ComplaintStatusResolved)}.Matches(&c))
	assert.False(t, ComplaintFilter{Ward: ptr("W2")}.Matches(&c))
}

func TestComplaintFilter_MatchesSearch(t *testing.T) {
	c := complaintAt("TKT-ABC", time.Now())

	assert.True(t, ComplaintFilter{SearchTerm: ptr("fan")}.Matches(&c))
	assert.True(t, ComplaintFilter{SearchTerm: ptr("FAN 101")}.Matches(&c))
	assert.False(t, ComplaintFilter{SearchTerm: ptr("fan 999")}.Matches(&c))
	assert.True(t, ComplaintFilter{SearchTerm: ptr("abc")}.Matches(&c))
}

func TestComplaintFilter_MatchesWindow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is 01:30 the next day in Kolkata.
	c := complaintAt("TKT-1", time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC))

	day := report.Date{Year: 2025, Month: time.June, Day: 16}
	assert.True(t, ComplaintFilter{SubmittedOn: &day, Location: loc}.Matches(&c))
	assert.False(t, ComplaintFilter{SubmittedOn: &day}.Matches(&c))

	from := report.Clock{Hour: 1, Minute: 0}
	to := report.Clock{Hour: 2, Minute: 0}
	assert.True(t, ComplaintFilter{ClockFrom: &from, ClockTo: &to, Location: loc}.Matches(&c))
	assert.False(t, ComplaintFilter{ClockFrom: &from, ClockTo: &to}.Matches(&c))

	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 19, 59, 0, 0, time.UTC)
	assert.False(t, ComplaintFilter{SubmittedFrom: &start, SubmittedTo: &end}.Matches(&c))
	end = end.Add(time.Minute)
	assert.True(t, ComplaintFilter{SubmittedFrom: &start, SubmittedTo: &end}.Matches(&c))
}

func TestComplaintFilter_MatchesResolvedOn(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	c := complaintAt("TKT-1", time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC))
	day := report.Date{Year: 2025, Month: time.June, Day: 16}
	assert.False(t, ComplaintFilter{ResolvedOn: &day}.Matches(&c))

	resolved := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	c.Status = domain.ComplaintStatusResolved
	c.ResolvedAt = &resolved
	assert.True(t, ComplaintFilter{ResolvedOn: &day, Location: loc}.Matches(&c))
	assert.False(t, ComplaintFilter{ResolvedOn: &day}.Matches(&c))
}

func TestComplaintFilter_WhereClauseSharesZone(t *testing.T) {
	submitted := report.Date{Year: 2025, Month: time.June, Day: 15}
	resolved := report.Date{Year: 2025, Month: time.June, Day: 16}

	where, args := ComplaintFilter{ResolvedOn: &resolved}.whereClause()
	assert.Equal(t, "1=1 AND (resolved_at AT TIME ZONE $1)::date = $2::date", where)
	assert.Equal(t, []any{"UTC", "2025-06-16"}, args)

	where, args = ComplaintFilter{SubmittedOn: &submitted, ResolvedOn: &resolved}.whereClause()
	assert.Equal(t,
		"1=1 AND (submitted_at AT TIME ZONE $1)::date = $2::date"+
			" AND (resolved_at AT TIME ZONE $1)::date = $3::date",
		where)
	assert.Equal(t, []any{"UTC", "2025-06-15", "2025-06-16"}, args)
}

func TestComplaintFilter_WhereClause(t *testing.T) {
	day := report.Date{Year: 2025, Month: time.June, Day: 16}
	from := report.Clock{Hour: 9}
	f := ComplaintFilter{
		Status:      ptr(domain.ComplaintStatusOpen),
		Department:  ptr("ELEC"),
		SubmittedOn: &day,
		ClockFrom:   &from,
		SearchTerm:  ptr("Fan"),
	}

	where, args := f.whereClause()
	assert.Equal(t,
		"1=1 AND status=$1 AND assigned_department=$2"+
			" AND (submitted_at AT TIME ZONE $3)::date = $4::date"+
			" AND (submitted_at AT TIME ZONE $3)::time >= $5::time"+
			" AND (LOWER(ticket_id) LIKE $6 OR LOWER(room_number) LIKE $6 OR LOWER(bed_number) LIKE $6 OR LOWER(description) LIKE $6)",
		where)
	assert.Equal(t, []any{"open", "ELEC", "UTC", "2025-06-16", "09:00:00", "%fan%"}, args)
}

func TestComplaintFilter_OrderClause(t *testing.T) {
	assert.Equal(t, "submitted_at DESC, ticket_id", ComplaintFilter{}.orderClause())
	f := ComplaintFilter{Ordering: ParseComplaintOrdering("priority,-status")}
	assert.Equal(t, "priority, status DESC, ticket_id", f.orderClause())
}

func TestComplaintFilter_Less(t *testing.T) {
	base := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	older := complaintAt("TKT-2", base)
	newer := complaintAt("TKT-1", base.Add(time.Hour))
	twin := complaintAt("TKT-3", base)

	f := ComplaintFilter{}
	assert.True(t, f.less(&newer, &older))
	assert.False(t, f.less(&older, &newer))
	assert.True(t, f.less(&older, &twin))
}

func TestLimitClause(t *testing.T) {
	assert.Equal(t, "", limitClause(0, 0))
	assert.Equal(t, " OFFSET 5", limitClause(0, 5))
	assert.Equal(t, " LIMIT 10 OFFSET 0", limitClause(10, -3))
}

func TestRoomFilter_WhereClause(t *testing.T) {
	where, args := RoomFilter{Status: ptr(domain.RoomStatusVacant), SearchTerm: ptr("a b")}.whereClause()
	assert.Equal(t,
		"1=1 AND status=$1"+
			" AND (LOWER(room_no) LIKE $2 OR LOWER(bed_no) LIKE $2 OR LOWER(block) LIKE $2)"+
			" AND (LOWER(room_no) LIKE $3 OR LOWER(bed_no) LIKE $3 OR LOWER(block) LIKE $3)",
		where)
	assert.Equal(t, []any{"vacant", "%a%", "%b%"}, args)
}
