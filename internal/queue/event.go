// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Queue names used on the default exchange.
const (
	BookingCreatedQueue       = "booking.created"
	BookingStatusChangedQueue = "booking.status_changed"
)

// BookingCreatedEvent is published after a booking row is persisted. It
// carries enough context for downstream consumers (notifications,
// analytics) without a database round trip.
type BookingCreatedEvent struct {
	BookingID    uint   `json:"booking_id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	RoomID       uint   `json:"room_id"`
	RoomName     string `json:"room_name"`
	MeetingTitle string `json:"meeting_title"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Attendees    int    `json:"attendees"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// BookingStatusChangedEvent is published when an update touches a
// booking's status field.
type BookingStatusChangedEvent struct {
	BookingID uint   `json:"booking_id"`
	RoomID    uint   `json:"room_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedAt string `json:"changed_at"`
}
