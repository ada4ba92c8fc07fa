package report

import (
	"math"
	"sort"
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
)

// StatusCounts tallies a set of complaints.
type StatusCounts struct {
	Total    int
	Open     int
	Resolved int
}

// Add counts one complaint with the given status.
func (s *StatusCounts) Add(status domain.ComplaintStatus) {
	s.Total++
	switch status {
	case domain.ComplaintStatusOpen:
		s.Open++
	case domain.ComplaintStatusResolved:
		s.Resolved++
	}
}

// GroupCounts is the tally of one (department, priority) pair.
type GroupCounts struct {
	Department string
	Priority   domain.ComplaintPriority
	StatusCounts
}

// Tally counts complaints by status.
func Tally(complaints []domain.Complaint) StatusCounts {
	var counts StatusCounts
	for i := range complaints {
		counts.Add(complaints[i].Status)
	}
	return counts
}

// GroupByDepartmentPriority partitions complaints by (assigned department, priority),
// ordered by department then priority.
func GroupByDepartmentPriority(complaints []domain.Complaint) []GroupCounts {
	type key struct {
		dept     string
		priority domain.ComplaintPriority
	}
	index := make(map[key]int)
	groups := []GroupCounts{}
	for i := range complaints {
		c := &complaints[i]
		k := key{dept: c.AssignedDepartment, priority: c.Priority}
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, GroupCounts{Department: c.AssignedDepartment, Priority: c.Priority})
		}
		groups[pos].Add(c.Status)
	}
	SortGroups(groups)
	return groups
}

// SortGroups orders groups by department then priority, both ascending.
func SortGroups(groups []GroupCounts) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Department != groups[j].Department {
			return groups[i].Department < groups[j].Department
		}
		return groups[i].Priority < groups[j].Priority
	})
}

// MeanTurnaround averages resolved_at - submitted_at over resolved complaints that carry a
// resolution timestamp. It returns nil when there are none.
func MeanTurnaround(complaints []domain.Complaint) *time.Duration {
	var sum time.Duration
	n := 0
	for i := range complaints {
		tat, ok := complaints[i].TurnaroundTime()
		if !ok {
			continue
		}
		sum += tat
		n++
	}
	if n == 0 {
		return nil
	}
	mean := (sum / time.Duration(n)).Round(time.Microsecond)
	return &mean
}

// SecondsToDuration converts an averaged epoch interval as returned by the database,
// rounding to the nearest microsecond like MeanTurnaround. A nil input stays nil.
func SecondsToDuration(seconds *float64) *time.Duration {
	if seconds == nil {
		return nil
	}
	d := time.Duration(math.Round(*seconds*1e6)) * time.Microsecond
	return &d
}

// TicketTAT is one line of the turnaround listing.
type TicketTAT struct {
	TicketID    string
	SubmittedAt time.Time
	ResolvedAt  *time.Time
	Priority    domain.ComplaintPriority
	Status      domain.ComplaintStatus
	TAT         string
}

// TicketTATs renders the per-ticket turnaround for every complaint, resolved or not.
func TicketTATs(complaints []domain.Complaint) []TicketTAT {
	out := make([]TicketTAT, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		tat := Placeholder
		if d, ok := c.TurnaroundTime(); ok {
			tat = FormatDuration(d)
		}
		out = append(out, TicketTAT{
			TicketID:    c.TicketID,
			SubmittedAt: c.SubmittedAt,
			ResolvedAt:  c.ResolvedAt,
			Priority:    c.Priority,
			Status:      c.Status,
			TAT:         tat,
		})
	}
	return out
}
