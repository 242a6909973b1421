package model

import "time"

// Room status values. A room's status describes the room itself, not any
// particular booking: an "occupied" room is in use right now, while
// "maintenance" removes it from normal rotation.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room is a bookable meeting room. Facilities is a free-form list of
// amenities ("projector", "whiteboard", ...) persisted as a JSON column
// through the GORM serializer.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:191;not null" json:"name"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	Location   string    `gorm:"size:191" json:"location"`
	Status     string    `gorm:"size:32;not null;default:available" json:"status"`
	Facilities []string  `gorm:"serializer:json" json:"facilities"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
