package report

import (
	"strings"
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const (
	msgInvalidPriority   = "Invalid priority value"
	msgMissingDeptOrPrio = "Both department and priority parameters are required"
	msgInvalidDateTime   = "Invalid date or time format"
)

// DepartmentPriorityQuery is the input of the single department/priority statistic.
type DepartmentPriorityQuery struct {
	Department string
	Priority   domain.ComplaintPriority
}

// ParseDepartmentPriorityQuery validates the raw department and priority parameters.
func ParseDepartmentPriorityQuery(department, priority string) (DepartmentPriorityQuery, error) {
	if department == "" || priority == "" {
		return DepartmentPriorityQuery{}, apperrors.NewValidationError(msgMissingDeptOrPrio, nil)
	}
	p, ok := domain.ParseComplaintPriority(priority)
	if !ok {
		return DepartmentPriorityQuery{}, apperrors.NewValidationError(msgInvalidPriority, nil)
	}
	return DepartmentPriorityQuery{Department: department, Priority: p}, nil
}

// StatsQuery holds the optional filters of the all-department breakdown.
type StatsQuery struct {
	Priority    *domain.ComplaintPriority
	Department  *string
	Status      *domain.ComplaintStatus
	SubmittedOn *Date
}

// RawStatsQuery carries the query string values exactly as received.
type RawStatsQuery struct {
	Priority    string
	Department  string
	Status      string
	SubmittedAt string
}

// ParseStatsQuery validates priority and the submission date. Department and status are
// applied as given so that unknown values simply match nothing.
func ParseStatsQuery(raw RawStatsQuery) (StatsQuery, error) {
	var q StatsQuery
	if raw.Priority != "" {
		p, ok := domain.ParseComplaintPriority(raw.Priority)
		if !ok {
			return StatsQuery{}, apperrors.NewValidationError(msgInvalidPriority, nil)
		}
		q.Priority = &p
	}
	if raw.Department != "" {
		dept := raw.Department
		q.Department = &dept
	}
	if raw.Status != "" {
		status := domain.ComplaintStatus(raw.Status)
		q.Status = &status
	}
	if raw.SubmittedAt != "" {
		d, err := ParseDate(raw.SubmittedAt)
		if err != nil {
			return StatsQuery{}, dateTimeError("/report/all_department_stats/?submitted_at=2025-06-16")
		}
		q.SubmittedOn = &d
	}
	return q, nil
}

// FiltersApplied echoes the raw filters; absent ones are reported as null.
func (r RawStatsQuery) FiltersApplied() map[string]any {
	return map[string]any{
		"priority":     nullable(r.Priority),
		"department":   nullable(r.Department),
		"status":       nullable(r.Status),
		"submitted_at": nullable(r.SubmittedAt),
	}
}

// RawTATQuery carries the turnaround report parameters exactly as received.
type RawTATQuery struct {
	Priority  string
	Date      string
	StartTime string
	EndTime   string
}

// FiltersApplied echoes the raw filters; absent ones are reported as null.
func (r RawTATQuery) FiltersApplied() map[string]any {
	return map[string]any{
		"priority":   nullable(r.Priority),
		"date":       nullable(r.Date),
		"start_time": nullable(r.StartTime),
		"end_time":   nullable(r.EndTime),
	}
}

// Window is the resolved submission-time restriction of a turnaround report.
// At most one of On, [From, To] and [ClockFrom, ClockTo] is set.
type Window struct {
	Priority  *domain.ComplaintPriority
	On        *Date
	From      *time.Time
	To        *time.Time
	ClockFrom *Clock
	ClockTo   *Clock
}

// ResolveTATWindow applies the turnaround filter policy:
//   - date with a time bound: [date start|00:00, date end|23:59] inclusive
//   - date alone: submissions on that calendar day
//   - time bounds alone: time of day within [start|00:00, end|23:59] on any day
func ResolveTATWindow(raw RawTATQuery, loc *time.Location) (Window, error) {
	var w Window
	if raw.Priority != "" {
		p, ok := domain.ParseComplaintPriority(raw.Priority)
		if !ok {
			return Window{}, apperrors.NewValidationError(msgInvalidPriority, nil)
		}
		w.Priority = &p
	}

	hasStart := strings.TrimSpace(raw.StartTime) != ""
	hasEnd := strings.TrimSpace(raw.EndTime) != ""

	start, end := StartOfDay, EndOfDay
	var err error
	if hasStart {
		if start, err = ParseClock(raw.StartTime); err != nil {
			return Window{}, tatFormatError()
		}
	}
	if hasEnd {
		if end, err = ParseClock(raw.EndTime); err != nil {
			return Window{}, tatFormatError()
		}
	}

	if strings.TrimSpace(raw.Date) != "" {
		day, err := ParseDate(raw.Date)
		if err != nil {
			return Window{}, tatFormatError()
		}
		if !hasStart && !hasEnd {
			w.On = &day
			return w, nil
		}
		from, to := day.At(start, loc), day.At(end, loc)
		w.From, w.To = &from, &to
		return w, nil
	}

	if hasStart || hasEnd {
		w.ClockFrom, w.ClockTo = &start, &end
	}
	return w, nil
}

func tatFormatError() error {
	return dateTimeError("/TATView/all_department_TATS/?date=2025-06-16&start_time=09:00&end_time=17:30")
}

func dateTimeError(example string) error {
	return apperrors.NewValidationError(msgInvalidDateTime, map[string]any{
		"message": "Dates use YYYY-MM-DD and times use 24-hour HH:MM (hour 0-23, minute 0-59)",
		"example": []string{
			example,
			"/TATView/all_department_TATS/?start_time=08:00&end_time=20:00",
			"/TATView/all_department_TATS/?date=2025-06-16",
		},
		"format_guide": map[string]string{
			"date":       "YYYY-MM-DD, e.g. 2025-06-16",
			"start_time": "HH:MM, e.g. 09:00 (defaults to 00:00)",
			"end_time":   "HH:MM, e.g. 17:30 (defaults to 23:59)",
		},
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
