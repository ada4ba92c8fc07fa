package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const resourceRoom = "room"

// RoomInput is a create or update payload. Nil fields are absent from the request.
type RoomInput struct {
	RoomNo     *string
	BedNo      *string
	Block      *string
	Ward       *string
	Speciality *string
	RoomType   *string
	Status     *string
}

// RoomService manages rooms and beds.
type RoomService struct {
	rooms  repository.RoomRepository
	logger *zap.Logger
}

// NewRoomService constructs the service.
func NewRoomService(rooms repository.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: logger}
}

// Create validates and stores a room. Status defaults to vacant.
func (s *RoomService) Create(ctx context.Context, input RoomInput) (*domain.Room, error) {
	room := &domain.Room{Status: domain.RoomStatusVacant}
	if err := applyRoomInput(room, input, false); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, apperrors.MapError(err)
	}
	return room, nil
}

// Get returns the room with id.
func (s *RoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, resourceRoom, map[string]any{"id": id})
	}
	return room, nil
}

// List returns one page of rooms matching filter.
func (s *RoomService) List(ctx context.Context, filter repository.RoomFilter) (Page[domain.Room], error) {
	items, err := s.rooms.List(ctx, filter)
	if err != nil {
		return Page[domain.Room]{}, apperrors.MapError(err)
	}
	total, err := s.rooms.Count(ctx, filter)
	if err != nil {
		return Page[domain.Room]{}, apperrors.MapError(err)
	}
	return Page[domain.Room]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Update applies input to the room. A full update (partial=false) requires every mandatory field.
func (s *RoomService) Update(ctx context.Context, id int64, input RoomInput, partial bool) (*domain.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRoomInput(room, input, partial); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceRoom, map[string]any{"id": id})
	}
	return room, nil
}

// UpdateStatus moves the room to status, which must be a known room status.
func (s *RoomService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := domain.RoomStatus(status)
	if !next.Valid() {
		return nil, apperrors.NewValidationError("Invalid status", nil)
	}
	previous := room.Status
	room.Status = next
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceRoom, map[string]any{"id": id})
	}
	s.logger.Info("room status updated",
		zap.Int64("room_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))
	return room, nil
}

// Delete removes the room.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, resourceRoom, map[string]any{"id": id})
	}
	return nil
}

func applyRoomInput(room *domain.Room, input RoomInput, partial bool) error {
	errs := fieldErrors{}
	errs.requiredPtr("room_no", input.RoomNo, partial)
	errs.requiredPtr("bed_no", input.BedNo, partial)
	if input.Status != nil {
		status := domain.RoomStatus(*input.Status)
		errs.choice("status", *input.Status, status.Valid(), choiceStrings(domain.RoomStatuses))
	}
	if err := errs.err(); err != nil {
		return err
	}

	setIfPresent(&room.RoomNo, input.RoomNo)
	setIfPresent(&room.BedNo, input.BedNo)
	setIfPresent(&room.Block, input.Block)
	setIfPresent(&room.Ward, input.Ward)
	setIfPresent(&room.Speciality, input.Speciality)
	setIfPresent(&room.RoomType, input.RoomType)
	if input.Status != nil {
		room.Status = domain.RoomStatus(*input.Status)
	}
	return nil
}
