package domain

// RoomStatus enumerates occupancy states for a bed or room.
type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// RoomStatuses lists every valid room status.
var RoomStatuses = []RoomStatus{RoomStatusVacant, RoomStatusOccupied, RoomStatusMaintenance}

// Valid reports whether s is a member of the room status enumeration.
func (s RoomStatus) Valid() bool {
	for _, candidate := range RoomStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Room identifies a physical bed/room unit.
type Room struct {
	ID         int64
	RoomNo     string
	BedNo      string
	Block      string
	Ward       string
	Speciality string
	RoomType   string
	Status     RoomStatus
}
