package model

import "time"

// Booking status values. There is deliberately no state machine over
// these: status updates are plain field writes (see handler.BookingHandler).
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a user's reservation of a room for a time range.
// EndTime must be after StartTime and Attendees must be at least 1;
// both are enforced at creation time. Nothing prevents two bookings
// from overlapping on the same room. That matches the behavior of the
// system this service replaces and is documented rather than patched
// (see DESIGN.md).
type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	RoomID       uint      `gorm:"index;not null" json:"roomId"`
	StartTime    time.Time `gorm:"index;not null" json:"startTime"`
	EndTime      time.Time `gorm:"not null" json:"endTime"`
	MeetingTitle string    `gorm:"size:255;not null" json:"meetingTitle"`
	Attendees    int       `gorm:"not null" json:"attendees"`
	Location     string    `gorm:"size:191" json:"location"`
	BookedBy     string    `gorm:"size:191" json:"bookedBy"`
	Status       string    `gorm:"size:32;not null;default:pending" json:"status"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}
