package dto

import "github.com/spec-kit/facility-complaints/internal/domain"

// RoomRequest is the create/update payload of a room. Absent fields stay nil.
type RoomRequest struct {
	RoomNo     *string `json:"room_no"`
	BedNo      *string `json:"bed_no"`
	Block      *string `json:"block"`
	Ward       *string `json:"ward"`
	Speciality *string `json:"speciality"`
	RoomType   *string `json:"room_type"`
	Status     *string `json:"status"`
}

// StatusRequest is the body of an update_status action.
type StatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

// RoomResponse representation.
type RoomResponse struct {
	ID         int64             `json:"id"`
	RoomNo     string            `json:"room_no"`
	BedNo      string            `json:"bed_no"`
	Block      string            `json:"block"`
	Ward       string            `json:"ward"`
	Speciality string            `json:"speciality"`
	RoomType   string            `json:"room_type"`
	Status     domain.RoomStatus `json:"status"`
}

// NewRoomResponse maps a room.
func NewRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		RoomNo:     r.RoomNo,
		BedNo:      r.BedNo,
		Block:      r.Block,
		Ward:       r.Ward,
		Speciality: r.Speciality,
		RoomType:   r.RoomType,
		Status:     r.Status,
	}
}
