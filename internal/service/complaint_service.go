package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/events"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const resourceComplaint = "complaint"

// ComplaintInput is a submission or update payload. TicketID is only read on create and
// Status only on create; later status changes go through UpdateStatus.
type ComplaintInput struct {
	TicketID           *string
	RoomNumber         *string
	BedNumber          *string
	Block              *string
	Ward               *string
	IssueType          *string
	AssignedDepartment *string
	Priority           *string
	Status             *string
	Description        *string
	Remarks            *string
}

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewComplaintService constructs the service. dispatcher may be nil.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher, logger: logger}
}

// Create files a complaint on behalf of caller (nil for anonymous submitters) at now.
func (s *ComplaintService) Create(ctx context.Context, input ComplaintInput, caller *string, now time.Time) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		Priority:    domain.ComplaintPriorityMedium,
		Status:      domain.ComplaintStatusOpen,
		SubmittedAt: now,
		SubmittedBy: domain.AnonymousSubmitter,
	}
	if caller != nil && *caller != "" {
		complaint.SubmittedBy = *caller
	}

	errs := fieldErrors{}
	var initial *domain.ComplaintStatus
	if input.Status != nil {
		status, ok := domain.ParseComplaintStatus(*input.Status)
		errs.choice("status", *input.Status, ok, choiceStrings(domain.ComplaintStatuses))
		initial = &status
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if err := applyComplaintInput(complaint, input, false); err != nil {
		return nil, err
	}

	complaint.TicketID = generateTicketID()
	if input.TicketID != nil && strings.TrimSpace(*input.TicketID) != "" {
		complaint.TicketID = strings.TrimSpace(*input.TicketID)
	}
	if initial != nil && *initial != domain.ComplaintStatusOpen {
		complaint.TransitionTo(*initial, complaint.Remarks, caller, now)
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventComplaintCreated,
		TicketID:  complaint.TicketID,
		Actor:     events.Actor{Username: caller},
		Timestamp: now,
		Payload: events.ComplaintCreatedPayload{
			AssignedDepartment: complaint.AssignedDepartment,
			Priority:           complaint.Priority,
			IssueType:          complaint.IssueType,
			RoomNumber:         complaint.RoomNumber,
			Ward:               complaint.Ward,
		},
	})
	return complaint, nil
}

// Get returns the complaint with ticketID.
func (s *ComplaintService) Get(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, resourceComplaint, map[string]any{"ticket_id": ticketID})
	}
	return complaint, nil
}

// List returns one page of complaints matching filter.
func (s *ComplaintService) List(ctx context.Context, filter repository.ComplaintFilter) (Page[domain.Complaint], error) {
	items, err := s.complaints.List(ctx, filter)
	if err != nil {
		return Page[domain.Complaint]{}, apperrors.MapError(err)
	}
	total, err := s.complaints.Count(ctx, filter)
	if err != nil {
		return Page[domain.Complaint]{}, apperrors.MapError(err)
	}
	return Page[domain.Complaint]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Update applies input to the complaint. The status and resolution fields are left alone.
func (s *ComplaintService) Update(ctx context.Context, ticketID string, input ComplaintInput, partial bool) (*domain.Complaint, error) {
	complaint, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := applyComplaintInput(complaint, input, partial); err != nil {
		return nil, err
	}
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceComplaint, map[string]any{"ticket_id": ticketID})
	}
	return complaint, nil
}

// UpdateStatus is the status-transition action. status must be a known complaint status;
// remarks are stored unconditionally. Resolving stamps now and caller as the resolution,
// overwriting an earlier resolution.
func (s *ComplaintService) UpdateStatus(ctx context.Context, ticketID, status, remarks string, caller *string, now time.Time) (*domain.Complaint, error) {
	complaint, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	next, ok := domain.ParseComplaintStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid status", nil)
	}

	previous := complaint.Status
	complaint.TransitionTo(next, remarks, caller, now)
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceComplaint, map[string]any{"ticket_id": ticketID})
	}

	s.logger.Info("complaint status updated",
		zap.String("ticket_id", ticketID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))
	s.publishEvent(ctx, events.Event{
		Type:      events.EventComplaintStatusChanged,
		TicketID:  ticketID,
		Actor:     events.Actor{Username: caller},
		Timestamp: now,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: previous,
			NewStatus: next,
			Remarks:   remarks,
		},
	})
	return complaint, nil
}

// ByStatus lists every complaint with the given status, newest first.
func (s *ComplaintService) ByStatus(ctx context.Context, status string) ([]domain.Complaint, error) {
	parsed, ok := domain.ParseComplaintStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid status", nil)
	}
	items, err := s.complaints.List(ctx, repository.ComplaintFilter{Status: &parsed})
	return items, apperrors.MapError(err)
}

// ByPriority lists every complaint with the given priority, newest first.
func (s *ComplaintService) ByPriority(ctx context.Context, priority string) ([]domain.Complaint, error) {
	parsed, ok := domain.ParseComplaintPriority(priority)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid priority", nil)
	}
	items, err := s.complaints.List(ctx, repository.ComplaintFilter{Priority: &parsed})
	return items, apperrors.MapError(err)
}

// Delete removes the complaint.
func (s *ComplaintService) Delete(ctx context.Context, ticketID string, caller *string) error {
	if err := s.complaints.Delete(ctx, ticketID); err != nil {
		return apperrors.NotFoundOr(err, resourceComplaint, map[string]any{"ticket_id": ticketID})
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintDeleted,
		TicketID: ticketID,
		Actor:    events.Actor{Username: caller},
	})
	return nil
}

func applyComplaintInput(c *domain.Complaint, input ComplaintInput, partial bool) error {
	errs := fieldErrors{}
	errs.requiredPtr("room_number", input.RoomNumber, partial)
	errs.requiredPtr("issue_type", input.IssueType, partial)
	errs.requiredPtr("assigned_department", input.AssignedDepartment, partial)
	errs.requiredPtr("description", input.Description, partial)
	if input.Priority != nil {
		_, ok := domain.ParseComplaintPriority(*input.Priority)
		errs.choice("priority", *input.Priority, ok, choiceStrings(domain.ComplaintPriorities))
	}
	if err := errs.err(); err != nil {
		return err
	}

	setIfPresent(&c.RoomNumber, input.RoomNumber)
	setIfPresent(&c.BedNumber, input.BedNumber)
	setIfPresent(&c.Block, input.Block)
	setIfPresent(&c.Ward, input.Ward)
	setIfPresent(&c.IssueType, input.IssueType)
	setIfPresent(&c.AssignedDepartment, input.AssignedDepartment)
	setIfPresent(&c.Description, input.Description)
	if input.Remarks != nil {
		c.Remarks = *input.Remarks
	}
	if input.Priority != nil {
		c.Priority = domain.ComplaintPriority(*input.Priority)
	}
	return nil
}

func generateTicketID() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
