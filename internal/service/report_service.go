package service

import (
	"context"
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// NoDataMessage is returned by AllDepartmentStats when no group matches.
const NoDataMessage = "No data found for the specified filters"

// DepartmentPriorityStats answers how many tickets one department holds at one priority.
type DepartmentPriorityStats struct {
	Department string
	Priority   domain.ComplaintPriority
	report.StatusCounts
}

// DepartmentStats is the all-department breakdown. When Empty is set, Groups is empty and
// FiltersApplied echoes the request.
type DepartmentStats struct {
	Empty          bool
	FiltersApplied map[string]any
	Groups         Page[report.GroupCounts]
}

// TATReport is the turnaround summary plus one page of the filtered tickets.
type TATReport struct {
	TotalTickets   int
	AverageTAT     *time.Duration
	FiltersApplied map[string]any
	Tickets        Page[report.TicketTAT]
}

// AverageTATText formats the average or returns the placeholder.
func (r TATReport) AverageTATText() string {
	return report.FormatOptionalDuration(r.AverageTAT)
}

// ReportService computes dashboard statistics over complaints. Calendar dates and times of
// day are interpreted in loc.
type ReportService struct {
	complaints repository.ComplaintRepository
	loc        *time.Location
}

// NewReportService constructs the service. A nil loc means UTC.
func NewReportService(complaints repository.ComplaintRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{complaints: complaints, loc: loc}
}

// Location returns the report time zone.
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// DepartmentPriorityStats counts the tickets of one department and priority.
func (s *ReportService) DepartmentPriorityStats(ctx context.Context, department, priority string) (DepartmentPriorityStats, error) {
	q, err := report.ParseDepartmentPriorityQuery(department, priority)
	if err != nil {
		return DepartmentPriorityStats{}, err
	}
	counts, err := s.complaints.Tally(ctx, repository.ComplaintFilter{
		Department: &q.Department,
		Priority:   &q.Priority,
	})
	if err != nil {
		return DepartmentPriorityStats{}, apperrors.MapError(err)
	}
	return DepartmentPriorityStats{Department: q.Department, Priority: q.Priority, StatusCounts: counts}, nil
}

// AllDepartmentStats groups the filtered tickets by department and priority and returns the
// limit/offset window of the groups.
func (s *ReportService) AllDepartmentStats(ctx context.Context, raw report.RawStatsQuery, limit, offset int) (DepartmentStats, error) {
	q, err := report.ParseStatsQuery(raw)
	if err != nil {
		return DepartmentStats{}, err
	}
	groups, err := s.complaints.GroupCounts(ctx, repository.ComplaintFilter{
		Priority:    q.Priority,
		Department:  q.Department,
		Status:      q.Status,
		SubmittedOn: q.SubmittedOn,
		Location:    s.loc,
	})
	if err != nil {
		return DepartmentStats{}, apperrors.MapError(err)
	}
	if len(groups) == 0 {
		return DepartmentStats{Empty: true, FiltersApplied: raw.FiltersApplied(), Groups: Page[report.GroupCounts]{Items: []report.GroupCounts{}}}, nil
	}
	return DepartmentStats{
		FiltersApplied: raw.FiltersApplied(),
		Groups: Page[report.GroupCounts]{
			Items:  window(groups, limit, offset),
			Total:  len(groups),
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

// TurnaroundReport resolves the TAT window, then returns the ticket total, the average
// turnaround of resolved tickets and one page of per-ticket turnarounds.
func (s *ReportService) TurnaroundReport(ctx context.Context, raw report.RawTATQuery, limit, offset int) (TATReport, error) {
	filter, err := s.tatFilter(raw)
	if err != nil {
		return TATReport{}, err
	}
	total, err := s.complaints.Count(ctx, filter)
	if err != nil {
		return TATReport{}, apperrors.MapError(err)
	}
	avg, err := s.complaints.AverageTurnaround(ctx, filter)
	if err != nil {
		return TATReport{}, apperrors.MapError(err)
	}

	filter.Limit, filter.Offset = limit, offset
	items, err := s.complaints.List(ctx, filter)
	if err != nil {
		return TATReport{}, apperrors.MapError(err)
	}
	return TATReport{
		TotalTickets:   total,
		AverageTAT:     avg,
		FiltersApplied: raw.FiltersApplied(),
		Tickets: Page[report.TicketTAT]{
			Items:  report.TicketTATs(items),
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}

// TicketTurnarounds lists complaints matching filter with their per-ticket turnaround.
func (s *ReportService) TicketTurnarounds(ctx context.Context, filter repository.ComplaintFilter) (Page[report.TicketTAT], error) {
	filter.Location = s.loc
	items, err := s.complaints.List(ctx, filter)
	if err != nil {
		return Page[report.TicketTAT]{}, apperrors.MapError(err)
	}
	total, err := s.complaints.Count(ctx, filter)
	if err != nil {
		return Page[report.TicketTAT]{}, apperrors.MapError(err)
	}
	return Page[report.TicketTAT]{Items: report.TicketTATs(items), Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *ReportService) tatFilter(raw report.RawTATQuery) (repository.ComplaintFilter, error) {
	w, err := report.ResolveTATWindow(raw, s.loc)
	if err != nil {
		return repository.ComplaintFilter{}, err
	}
	return repository.ComplaintFilter{
		Priority:      w.Priority,
		SubmittedOn:   w.On,
		SubmittedFrom: w.From,
		SubmittedTo:   w.To,
		ClockFrom:     w.ClockFrom,
		ClockTo:       w.ClockTo,
		Location:      s.loc,
	}, nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
