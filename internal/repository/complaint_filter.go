package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
)

// ComplaintOrder is one ORDER BY term of a complaint listing.
type ComplaintOrder struct {
	Field string
	Desc  bool
}

var complaintOrderColumns = map[string]string{
	"submitted_at": "submitted_at",
	"priority":     "priority",
	"status":       "status",
}

var complaintSearchColumns = []string{"ticket_id", "room_number", "bed_number", "description"}

// DefaultComplaintOrdering lists newest submissions first.
var DefaultComplaintOrdering = []ComplaintOrder{{Field: "submitted_at", Desc: true}}

// ParseComplaintOrdering reads a comma separated ordering such as "-submitted_at,priority".
// Unknown fields are ignored; an empty result falls back to DefaultComplaintOrdering.
func ParseComplaintOrdering(raw string) []ComplaintOrder {
	var out []ComplaintOrder
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if _, ok := complaintOrderColumns[field]; !ok {
			continue
		}
		out = append(out, ComplaintOrder{Field: field, Desc: desc})
	}
	if len(out) == 0 {
		return DefaultComplaintOrdering
	}
	return out
}

// ComplaintFilter is the statically typed restriction of a complaint query. Nil fields do
// not filter. Limit <= 0 means unbounded.
type ComplaintFilter struct {
	TicketID      *string
	Status        *domain.ComplaintStatus
	Priority      *domain.ComplaintPriority
	Department    *string
	IssueType     *string
	Ward          *string
	Block         *string
	SubmittedOn   *report.Date
	ResolvedOn    *report.Date
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	ClockFrom     *report.Clock
	ClockTo       *report.Clock
	Location      *time.Location
	SearchTerm    *string
	Ordering      []ComplaintOrder
	Limit         int
	Offset        int
}

func (f ComplaintFilter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

// Unpaged returns a copy of f without limit/offset.
func (f ComplaintFilter) Unpaged() ComplaintFilter {
	f.Limit, f.Offset = 0, 0
	return f
}

// Matches evaluates the filter against a single complaint.
func (f ComplaintFilter) Matches(c *domain.Complaint) bool {
	loc := f.location()
	if f.TicketID != nil && c.TicketID != *f.TicketID {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.Priority != nil && c.Priority != *f.Priority {
		return false
	}
	if f.Department != nil && c.AssignedDepartment != *f.Department {
		return false
	}
	if f.IssueType != nil && c.IssueType != *f.IssueType {
		return false
	}
	if f.Ward != nil && c.Ward != *f.Ward {
		return false
	}
	if f.Block != nil && c.Block != *f.Block {
		return false
	}
	if f.SubmittedOn != nil && report.DateOf(c.SubmittedAt, loc) != *f.SubmittedOn {
		return false
	}
	if f.ResolvedOn != nil && (c.ResolvedAt == nil || report.DateOf(*c.ResolvedAt, loc) != *f.ResolvedOn) {
		return false
	}
	if f.SubmittedFrom != nil && c.SubmittedAt.Before(*f.SubmittedFrom) {
		return false
	}
	if f.SubmittedTo != nil && c.SubmittedAt.After(*f.SubmittedTo) {
		return false
	}
	if f.ClockFrom != nil || f.ClockTo != nil {
		offset := report.SinceMidnight(c.SubmittedAt, loc)
		if f.ClockFrom != nil && offset < f.ClockFrom.Offset() {
			return false
		}
		if f.ClockTo != nil && offset > f.ClockTo.Offset() {
			return false
		}
	}
	if f.SearchTerm != nil {
		fields := []string{c.TicketID, c.RoomNumber, c.BedNumber, c.Description}
		if !matchesSearch(*f.SearchTerm, fields) {
			return false
		}
	}
	return true
}

// whereClause renders the filter as a SQL predicate with positional arguments.
func (f ComplaintFilter) whereClause() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	zoneParam := ""
	zone := func() string {
		if zoneParam == "" {
			zoneParam = next(f.location().String())
		}
		return zoneParam
	}

	if f.TicketID != nil {
		clauses = append(clauses, "ticket_id="+next(*f.TicketID))
	}
	if f.Status != nil {
		clauses = append(clauses, "status="+next(string(*f.Status)))
	}
	if f.Priority != nil {
		clauses = append(clauses, "priority="+next(string(*f.Priority)))
	}
	if f.Department != nil {
		clauses = append(clauses, "assigned_department="+next(*f.Department))
	}
	if f.IssueType != nil {
		clauses = append(clauses, "issue_type="+next(*f.IssueType))
	}
	if f.Ward != nil {
		clauses = append(clauses, "ward="+next(*f.Ward))
	}
	if f.Block != nil {
		clauses = append(clauses, "block="+next(*f.Block))
	}
	if f.SubmittedOn != nil || f.ClockFrom != nil || f.ClockTo != nil {
		local := fmt.Sprintf("(submitted_at AT TIME ZONE %s)", zone())
		if f.SubmittedOn != nil {
			clauses = append(clauses, fmt.Sprintf("%s::date = %s::date", local, next(f.SubmittedOn.String())))
		}
		if f.ClockFrom != nil {
			clauses = append(clauses, fmt.Sprintf("%s::time >= %s::time", local, next(f.ClockFrom.SQL())))
		}
		if f.ClockTo != nil {
			clauses = append(clauses, fmt.Sprintf("%s::time <= %s::time", local, next(f.ClockTo.SQL())))
		}
	}
	if f.ResolvedOn != nil {
		clauses = append(clauses, fmt.Sprintf("(resolved_at AT TIME ZONE %s)::date = %s::date", zone(), next(f.ResolvedOn.String())))
	}
	if f.SubmittedFrom != nil {
		clauses = append(clauses, "submitted_at >= "+next(*f.SubmittedFrom))
	}
	if f.SubmittedTo != nil {
		clauses = append(clauses, "submitted_at <= "+next(*f.SubmittedTo))
	}
	if f.SearchTerm != nil {
		clauses = append(clauses, searchClause(*f.SearchTerm, complaintSearchColumns, next)...)
	}
	return strings.Join(clauses, " AND "), args
}

// orderClause renders the ordering; ticket_id breaks ties so pages are stable.
func (f ComplaintFilter) orderClause() string {
	ordering := f.Ordering
	if len(ordering) == 0 {
		ordering = DefaultComplaintOrdering
	}
	terms := make([]string, 0, len(ordering)+1)
	for _, o := range ordering {
		col, ok := complaintOrderColumns[o.Field]
		if !ok {
			continue
		}
		if o.Desc {
			col += " DESC"
		}
		terms = append(terms, col)
	}
	terms = append(terms, "ticket_id")
	return strings.Join(terms, ", ")
}

// less orders two complaints the same way orderClause does.
func (f ComplaintFilter) less(a, b *domain.Complaint) bool {
	ordering := f.Ordering
	if len(ordering) == 0 {
		ordering = DefaultComplaintOrdering
	}
	for _, o := range ordering {
		var cmp int
		switch o.Field {
		case "submitted_at":
			cmp = a.SubmittedAt.Compare(b.SubmittedAt)
		case "priority":
			cmp = strings.Compare(string(a.Priority), string(b.Priority))
		case "status":
			cmp = strings.Compare(string(a.Status), string(b.Status))
		}
		if cmp == 0 {
			continue
		}
		if o.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return a.TicketID < b.TicketID
}

// limitClause renders LIMIT/OFFSET, or nothing for unbounded queries.
func limitClause(limit, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		if offset == 0 {
			return ""
		}
		return fmt.Sprintf(" OFFSET %d", offset)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

// matchesSearch requires every whitespace separated term to appear, case-insensitively,
// in at least one of the fields.
func matchesSearch(search string, fields []string) bool {
	for _, term := range strings.Fields(strings.ToLower(search)) {
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// searchClause renders the SQL twin of matchesSearch over the given columns.
func searchClause(search string, columns []string, next func(any) string) []string {
	var clauses []string
	for _, term := range strings.Fields(search) {
		p := next("%" + strings.ToLower(term) + "%")
		ors := make([]string, len(columns))
		for i, col := range columns {
			ors[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, p)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	return clauses
}
