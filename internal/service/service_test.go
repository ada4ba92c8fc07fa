package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/events"
	"github.com/spec-kit/facility-complaints/internal/report"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func requireStatus(t *testing.T, err error, status int, message string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, status, de.HTTPStatus)
	if message != "" {
		assert.Equal(t, message, de.Message)
	}
	return de
}

type fixture struct {
	store      *repository.MemoryStore
	rooms      *RoomService
	depts      *DepartmentService
	categories *IssueCategoryService
	complaints *ComplaintService
	reports    *ReportService
	published  []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: repository.NewMemoryStore()}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{events.EventComplaintCreated, events.EventComplaintStatusChanged, events.EventComplaintDeleted} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	logger := zap.NewNop()
	f.rooms = NewRoomService(f.store.Rooms(), logger)
	f.depts = NewDepartmentService(f.store.Departments())
	f.categories = NewIssueCategoryService(f.store.IssueCategories())
	f.complaints = NewComplaintService(f.store.Complaints(), dispatcher, logger)
	f.reports = NewReportService(f.store.Complaints(), time.UTC)
	return f
}

func complaintInput(dept, priority string) ComplaintInput {
	return ComplaintInput{
		RoomNumber:         strPtr("101"),
		BedNumber:          strPtr("B1"),
		Ward:               strPtr("W1"),
		IssueType:          strPtr("FAN"),
		AssignedDepartment: strPtr(dept),
		Priority:           strPtr(priority),
		Description:        strPtr("Fan not working"),
	}
}

func (f *fixture) submit(t *testing.T, dept, priority string, at time.Time) *domain.Complaint {
	t.Helper()
	c, err := f.complaints.Create(context.Background(), complaintInput(dept, priority), nil, at)
	require.NoError(t, err)
	return c
}

func TestRoomService_CreateAndUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room, err := f.rooms.Create(ctx, RoomInput{RoomNo: strPtr("101"), BedNo: strPtr("1"), Ward: strPtr("W1")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusVacant, room.Status)

	for _, status := range domain.RoomStatuses {
		updated, err := f.rooms.UpdateStatus(ctx, room.ID, string(status))
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)

		got, err := f.rooms.Get(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	_, err = f.rooms.UpdateStatus(ctx, room.ID, "cleaning")
	requireStatus(t, err, http.StatusBadRequest, "Invalid status")
	got, err := f.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusMaintenance, got.Status)

	_, err = f.rooms.UpdateStatus(ctx, 999, "vacant")
	requireStatus(t, err, http.StatusNotFound, "room not found")
}

func TestRoomService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.rooms.Create(ctx, RoomInput{RoomNo: strPtr("101")})
	de := requireStatus(t, err, http.StatusBadRequest, "Invalid input")
	assert.Contains(t, de.Details["fields"], "bed_no")

	_, err = f.rooms.Create(ctx, RoomInput{RoomNo: strPtr("101"), BedNo: strPtr("1"), Status: strPtr("cleaning")})
	requireStatus(t, err, http.StatusBadRequest, "Invalid input")

	room, err := f.rooms.Create(ctx, RoomInput{RoomNo: strPtr("101"), BedNo: strPtr("1")})
	require.NoError(t, err)

	patched, err := f.rooms.Update(ctx, room.ID, RoomInput{Ward: strPtr("W9")}, true)
	require.NoError(t, err)
	assert.Equal(t, "W9", patched.Ward)
	assert.Equal(t, "101", patched.RoomNo)

	_, err = f.rooms.Update(ctx, room.ID, RoomInput{Ward: strPtr("W9")}, false)
	requireStatus(t, err, http.StatusBadRequest, "Invalid input")

	require.NoError(t, f.rooms.Delete(ctx, room.ID))
	requireStatus(t, f.rooms.Delete(ctx, room.ID), http.StatusNotFound, "room not found")
}

func TestDepartmentAndIssueCategoryServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.depts.Create(ctx, DepartmentInput{Code: strPtr("ELEC"), Name: strPtr("Electrical")})
	require.NoError(t, err)
	assert.Equal(t, domain.RecordStatusActive, dept.Status)

	_, err = f.depts.Create(ctx, DepartmentInput{Code: strPtr("ELEC"), Name: strPtr("Again")})
	requireStatus(t, err, http.StatusConflict, "")

	_, err = f.categories.Create(ctx, IssueCategoryInput{Code: strPtr("FAN"), Name: strPtr("Fan"), Department: strPtr("NOPE")})
	requireStatus(t, err, http.StatusBadRequest, "")

	cat, err := f.categories.Create(ctx, IssueCategoryInput{Code: strPtr("FAN"), Name: strPtr("Fan"), Department: strPtr("ELEC")})
	require.NoError(t, err)
	assert.Equal(t, "Electrical", cat.DepartmentName)

	cat, err = f.categories.Update(ctx, "FAN", IssueCategoryInput{Status: strPtr("inactive")}, true)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordStatusInactive, cat.Status)

	page, err := f.categories.List(ctx, repository.IssueCategoryFilter{SearchTerm: strPtr("electrical")})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	requireStatus(t, f.depts.Delete(ctx, "ELEC"), http.StatusConflict, "")
	_, err = f.depts.Get(ctx, "PLUMB")
	requireStatus(t, err, http.StatusNotFound, "department not found")
}

func TestComplaintService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	anon, err := f.complaints.Create(ctx, complaintInput("ELEC", "high"), nil, now)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousSubmitter, anon.SubmittedBy)
	assert.Equal(t, domain.ComplaintStatusOpen, anon.Status)
	assert.Regexp(t, `^TKT-[0-9A-F]{8}$`, anon.TicketID)
	assert.Nil(t, anon.ResolvedAt)
	assert.Equal(t, now, anon.SubmittedAt)

	input := complaintInput("ELEC", "low")
	input.TicketID = strPtr("TKT-CUSTOM")
	input.Priority = nil
	named, err := f.complaints.Create(ctx, input, strPtr("nurse"), now)
	require.NoError(t, err)
	assert.Equal(t, "nurse", named.SubmittedBy)
	assert.Equal(t, domain.ComplaintPriorityMedium, named.Priority)

	_, err = f.complaints.Create(ctx, input, nil, now)
	requireStatus(t, err, http.StatusConflict, "")

	bad := complaintInput("ELEC", "urgent")
	_, err = f.complaints.Create(ctx, bad, nil, now)
	de := requireStatus(t, err, http.StatusBadRequest, "Invalid input")
	assert.Contains(t, de.Details["fields"], "priority")

	require.Len(t, f.published, 2)
	assert.Equal(t, events.EventComplaintCreated, f.published[0].Type)
	assert.NotEmpty(t, f.published[0].ID)
}

func TestComplaintService_CreateResolvedKeepsInvariant(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	input := complaintInput("ELEC", "high")
	input.Status = strPtr("resolved")

	c, err := f.complaints.Create(context.Background(), input, strPtr("nurse"), now)
	require.NoError(t, err)
	assert.True(t, c.IsResolved())
	assert.Equal(t, now, *c.ResolvedAt)
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	submitted := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	c := f.submit(t, "ELEC", "high", submitted)

	_, err := f.complaints.UpdateStatus(ctx, c.TicketID, "done", "", nil, submitted)
	requireStatus(t, err, http.StatusBadRequest, "Invalid status")
	unchanged, err := f.complaints.Get(ctx, c.TicketID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusOpen, unchanged.Status)

	first := submitted.Add(time.Hour)
	resolved, err := f.complaints.UpdateStatus(ctx, c.TicketID, "resolved", "fixed", strPtr("tech"), first)
	require.NoError(t, err)
	assert.Equal(t, first, *resolved.ResolvedAt)
	assert.Equal(t, "tech", *resolved.ResolvedBy)
	assert.Equal(t, "fixed", resolved.Remarks)

	// Resolving again overwrites the earlier resolution.
	second := submitted.Add(3 * time.Hour)
	resolved, err = f.complaints.UpdateStatus(ctx, c.TicketID, "resolved", "", nil, second)
	require.NoError(t, err)
	assert.Equal(t, second, *resolved.ResolvedAt)
	assert.Nil(t, resolved.ResolvedBy)
	assert.Equal(t, "", resolved.Remarks)

	reopened, err := f.complaints.UpdateStatus(ctx, c.TicketID, "in_progress", "back", nil, second)
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)
	assert.Nil(t, reopened.ResolvedBy)

	_, err = f.complaints.UpdateStatus(ctx, "TKT-NOPE", "resolved", "", nil, second)
	requireStatus(t, err, http.StatusNotFound, "complaint not found")

	last := f.published[len(f.published)-1]
	assert.Equal(t, events.EventComplaintStatusChanged, last.Type)
	payload := last.Payload.(events.ComplaintStatusChangedPayload)
	assert.Equal(t, domain.ComplaintStatusResolved, payload.OldStatus)
	assert.Equal(t, domain.ComplaintStatusInProgress, payload.NewStatus)
}

func TestComplaintService_UpdateLeavesStatusAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.submit(t, "ELEC", "high", time.Now())

	updated, err := f.complaints.Update(ctx, c.TicketID, ComplaintInput{Description: strPtr("Fan sparks"), Status: strPtr("resolved")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Fan sparks", updated.Description)
	assert.Equal(t, domain.ComplaintStatusOpen, updated.Status)
	assert.Nil(t, updated.ResolvedAt)
}

func TestComplaintService_ByPriorityAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	high := f.submit(t, "ELEC", "high", base)
	f.submit(t, "ELEC", "low", base.Add(time.Minute))
	newer := f.submit(t, "PLUMB", "high", base.Add(2*time.Minute))

	list, err := f.complaints.ByPriority(ctx, "high")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.TicketID, list[0].TicketID)
	assert.Equal(t, high.TicketID, list[1].TicketID)

	_, err = f.complaints.ByPriority(ctx, "urgent")
	requireStatus(t, err, http.StatusBadRequest, "Invalid priority")
	_, err = f.complaints.ByPriority(ctx, "")
	requireStatus(t, err, http.StatusBadRequest, "Invalid priority")

	list, err = f.complaints.ByStatus(ctx, "open")
	require.NoError(t, err)
	assert.Len(t, list, 3)
	_, err = f.complaints.ByStatus(ctx, "pending")
	requireStatus(t, err, http.StatusBadRequest, "Invalid status")
}

func TestComplaintService_Delete(t *testing.T) {
	f := newFixture(t)
	c := f.submit(t, "ELEC", "high", time.Now())
	require.NoError(t, f.complaints.Delete(context.Background(), c.TicketID, strPtr("admin")))
	requireStatus(t, f.complaints.Delete(context.Background(), c.TicketID, nil), http.StatusNotFound, "complaint not found")
	assert.Equal(t, events.EventComplaintDeleted, f.published[len(f.published)-1].Type)
}

func TestReportService_DepartmentPriorityStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, f.submit(t, "ELEC", "high", base.Add(time.Duration(i)*time.Minute)).TicketID)
	}
	f.submit(t, "ELEC", "low", base)
	_, err := f.complaints.UpdateStatus(ctx, ids[0], "resolved", "", nil, base.Add(time.Hour))
	require.NoError(t, err)
	_, err = f.complaints.UpdateStatus(ctx, ids[1], "in_progress", "", nil, base.Add(time.Hour))
	require.NoError(t, err)

	stats, err := f.reports.DepartmentPriorityStats(ctx, "ELEC", "high")
	require.NoError(t, err)
	assert.Equal(t, "ELEC", stats.Department)
	assert.Equal(t, domain.ComplaintPriorityHigh, stats.Priority)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.Resolved)
	assert.GreaterOrEqual(t, stats.Total, stats.Open+stats.Resolved)

	_, err = f.reports.DepartmentPriorityStats(ctx, "ELEC", "")
	requireStatus(t, err, http.StatusBadRequest, "Both department and priority parameters are required")
	_, err = f.reports.DepartmentPriorityStats(ctx, "ELEC", "urgent")
	requireStatus(t, err, http.StatusBadRequest, "Invalid priority value")
}

func TestReportService_AllDepartmentStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	f.submit(t, "PLUMB", "low", day)
	f.submit(t, "ELEC", "low", day)
	f.submit(t, "ELEC", "high", day)
	f.submit(t, "ELEC", "high", day.Add(24*time.Hour))

	stats, err := f.reports.AllDepartmentStats(ctx, report.RawStatsQuery{}, 0, 0)
	require.NoError(t, err)
	require.False(t, stats.Empty)
	groups := stats.Groups.Items
	require.Len(t, groups, 3)
	assert.Equal(t, "ELEC", groups[0].Department)
	assert.Equal(t, domain.ComplaintPriorityHigh, groups[0].Priority)
	assert.Equal(t, domain.ComplaintPriorityLow, groups[1].Priority)
	assert.Equal(t, "PLUMB", groups[2].Department)
	sum := 0
	for _, g := range groups {
		sum += g.Total
	}
	assert.Equal(t, 4, sum)

	paged, err := f.reports.AllDepartmentStats(ctx, report.RawStatsQuery{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, paged.Groups.Total)
	require.Len(t, paged.Groups.Items, 1)
	assert.Equal(t, domain.ComplaintPriorityLow, paged.Groups.Items[0].Priority)

	onDay, err := f.reports.AllDepartmentStats(ctx, report.RawStatsQuery{SubmittedAt: "2025-06-16", Department: "ELEC"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, onDay.Groups.Items, 2)
	assert.Equal(t, 1, onDay.Groups.Items[0].Total)

	empty, err := f.reports.AllDepartmentStats(ctx, report.RawStatsQuery{Department: "NOPE", Status: "weird"}, 0, 0)
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	assert.Equal(t, "NOPE", empty.FiltersApplied["department"])
	assert.Nil(t, empty.FiltersApplied["priority"])

	_, err = f.reports.AllDepartmentStats(ctx, report.RawStatsQuery{Priority: "urgent"}, 0, 0)
	requireStatus(t, err, http.StatusBadRequest, "Invalid priority value")
}

func TestReportService_TurnaroundReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	resolved := f.submit(t, "ELEC", "high", day)
	f.submit(t, "ELEC", "low", day.Add(30*time.Minute))
	f.submit(t, "ELEC", "low", day.Add(24*time.Hour))
	_, err := f.complaints.UpdateStatus(ctx, resolved.TicketID, "resolved", "", nil, day.Add(2*time.Hour))
	require.NoError(t, err)

	tat, err := f.reports.TurnaroundReport(ctx, report.RawTATQuery{Date: "2025-06-16"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, tat.TotalTickets)
	assert.Equal(t, "2:00:00", tat.AverageTATText())
	require.Len(t, tat.Tickets.Items, 2)
	assert.Equal(t, report.Placeholder, tat.Tickets.Items[0].TAT)
	assert.Equal(t, "2:00:00", tat.Tickets.Items[1].TAT)
	assert.Equal(t, "2025-06-16", tat.FiltersApplied["date"])

	window, err := f.reports.TurnaroundReport(ctx, report.RawTATQuery{Date: "2025-06-16", StartTime: "09:15"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, window.TotalTickets)
	assert.Equal(t, report.Placeholder, window.AverageTATText())

	clock, err := f.reports.TurnaroundReport(ctx, report.RawTATQuery{EndTime: "09:00"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, clock.TotalTickets)

	_, err = f.reports.TurnaroundReport(ctx, report.RawTATQuery{Date: "2025-06-16", StartTime: "25:00"}, 10, 0)
	de := requireStatus(t, err, http.StatusBadRequest, "Invalid date or time format")
	assert.Contains(t, de.Details, "format_guide")
	assert.Contains(t, de.Details, "example")

	_, err = f.reports.TurnaroundReport(ctx, report.RawTATQuery{Priority: "urgent"}, 10, 0)
	requireStatus(t, err, http.StatusBadRequest, "Invalid priority value")
}

func TestReportService_TurnaroundInReportZone(t *testing.T) {
	f := newFixture(t)
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	reports := NewReportService(f.store.Complaints(), loc)

	// 19:00 UTC on the 15th is 00:30 on the 16th in Kolkata.
	f.submit(t, "ELEC", "high", time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC))

	tat, err := reports.TurnaroundReport(context.Background(), report.RawTATQuery{Date: "2025-06-16"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tat.TotalTickets)

	utc, err := f.reports.TurnaroundReport(context.Background(), report.RawTATQuery{Date: "2025-06-16"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, utc.TotalTickets)
}

func TestReportService_TicketTurnarounds(t *testing.T) {
	f := newFixture(t)
	c := f.submit(t, "ELEC", "high", time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))
	f.submit(t, "ELEC", "low", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))
	_, err := f.complaints.UpdateStatus(context.Background(), c.TicketID, "resolved", "", nil, time.Date(2025, 6, 17, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	page, err := f.reports.TicketTurnarounds(context.Background(), repository.ComplaintFilter{Status: statusPtr(domain.ComplaintStatusResolved), Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "1 day, 1:30:00", page.Items[0].TAT)
}

func statusPtr(s domain.ComplaintStatus) *domain.ComplaintStatus { return &s }
