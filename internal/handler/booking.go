package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/queue"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	queue_publisher "github.com/iliyamo/meeting-room-booking/internal/service"
)

// BookingHandler implements booking CRUD. Creation requires an
// authenticated session; the other operations mirror the open access of
// the system this replaces (see DESIGN.md on the missing admin gate).
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo

	// PublishEvents gates the RabbitMQ side effects so tests can run
	// without a broker.
	PublishEvents bool
}

func NewBookingHandler(bookings *repository.BookingRepo, rooms *repository.RoomRepo, publish bool) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Rooms: rooms, PublishEvents: publish}
}

// ----- DTOs -----

// createBookingReq deliberately has no userId field: the owner of a new
// booking always comes from the verified session token, so a value
// smuggled into the request body is ignored.
type createBookingReq struct {
	RoomID       uint   `json:"roomId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	MeetingTitle string `json:"meetingTitle"`
	Attendees    int    `json:"attendees"`
	Location     string `json:"location"`
	BookedBy     string `json:"bookedBy"`
	Status       string `json:"status"`
	Description  string `json:"description"`
}

// updateBookingReq uses pointers throughout: a nil field was absent from
// the request body and keeps its stored value (partial-update semantics).
type updateBookingReq struct {
	RoomID       *uint   `json:"roomId"`
	StartTime    *string `json:"startTime"`
	EndTime      *string `json:"endTime"`
	MeetingTitle *string `json:"meetingTitle"`
	Attendees    *int    `json:"attendees"`
	Location     *string `json:"location"`
	BookedBy     *string `json:"bookedBy"`
	Status       *string `json:"status"`
	Description  *string `json:"description"`
}

type roomPart struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// bookingResp is a booking row plus user/room summaries joined in, the
// shape the dashboard and calendar views consume.
type bookingResp struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	RoomID       uint      `json:"roomId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	MeetingTitle string    `json:"meetingTitle"`
	Attendees    int       `json:"attendees"`
	Location     string    `json:"location"`
	BookedBy     string    `json:"bookedBy"`
	Status       string    `json:"status"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	User         userPart  `json:"user"`
	Room         roomPart  `json:"room"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:           b.ID,
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		MeetingTitle: b.MeetingTitle,
		Attendees:    b.Attendees,
		Location:     b.Location,
		BookedBy:     b.BookedBy,
		Status:       b.Status,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
		User:         userPart{ID: b.User.ID, Name: b.User.Name, Email: b.User.Email},
		Room:         roomPart{ID: b.Room.ID, Name: b.Room.Name},
	}
}

// CreateBooking handles POST /api/bookings.
//
// Every field except description is required and must be non-zero.
// Deliberately absent checks, preserved from the observed system:
// no overlap detection against existing bookings on the same room, and
// no comparison of attendees against room capacity.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if field := firstMissingField(req); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required field: " + field})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endTime"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endTime must be after startTime"})
	}
	if req.Attendees < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attendees must be at least 1"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	b := &model.Booking{
		UserID:       claims.UserID, // always the token's id, never client input
		RoomID:       req.RoomID,
		StartTime:    start,
		EndTime:      end,
		MeetingTitle: req.MeetingTitle,
		Attendees:    req.Attendees,
		Location:     req.Location,
		BookedBy:     req.BookedBy,
		Status:       req.Status,
		Description:  req.Description,
	}
	if err := h.Bookings.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if h.PublishEvents {
		ev := queue.BookingCreatedEvent{
			BookingID:    b.ID,
			UserID:       b.UserID,
			UserName:     b.User.Name,
			RoomID:       b.RoomID,
			RoomName:     b.Room.Name,
			MeetingTitle: b.MeetingTitle,
			StartTime:    b.StartTime.UTC().Format(time.RFC3339),
			EndTime:      b.EndTime.UTC().Format(time.RFC3339),
			Attendees:    b.Attendees,
			Status:       b.Status,
			CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() { _ = queue_publisher.PublishBookingCreated(context.Background(), ev) }()
	}

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// firstMissingField returns the name of the first required create field
// that is absent or zero, or "" when all are present.
func firstMissingField(req createBookingReq) string {
	switch {
	case req.RoomID == 0:
		return "roomId"
	case req.StartTime == "":
		return "startTime"
	case req.EndTime == "":
		return "endTime"
	case req.MeetingTitle == "":
		return "meetingTitle"
	case req.Attendees == 0:
		return "attendees"
	case req.Location == "":
		return "location"
	case req.BookedBy == "":
		return "bookedBy"
	case req.Status == "":
		return "status"
	}
	return ""
}

// ListBookings handles GET /api/bookings. Filters: userId and roomId by
// exact match; date=YYYY-MM-DD selects one server-local calendar day on
// startTime and takes precedence over from/to, which form an open
// RFC3339 range. Results are ascending by start time, unpaginated.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	var f repository.BookingFilter

	if v := c.QueryParam("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid userId"})
		}
		uid := uint(id)
		f.UserID = &uid
	}
	if v := c.QueryParam("roomId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid roomId"})
		}
		rid := uint(id)
		f.RoomID = &rid
	}
	if v := c.QueryParam("date"); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		f.Date = &day
	}
	if v := c.QueryParam("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
		}
		f.From = &from
	}
	if v := c.QueryParam("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
		}
		f.To = &to
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResp(&bookings[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// UpdateBooking handles PUT /api/bookings/:id with partial-update
// semantics: only fields present in the body are written. There is no
// status state machine; any status value may replace any other, matching
// the plain field update of the observed system.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]any{}
	if req.RoomID != nil {
		fields["room_id"] = *req.RoomID
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime"})
		}
		fields["start_time"] = t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endTime"})
		}
		fields["end_time"] = t
	}
	if req.MeetingTitle != nil {
		fields["meeting_title"] = *req.MeetingTitle
	}
	if req.Attendees != nil {
		fields["attendees"] = *req.Attendees
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.BookedBy != nil {
		fields["booked_by"] = *req.BookedBy
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	before, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	b, err := h.Bookings.Update(ctx, id, fields)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if h.PublishEvents && req.Status != nil && *req.Status != before.Status {
		ev := queue.BookingStatusChangedEvent{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			OldStatus: before.Status,
			NewStatus: b.Status,
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = queue_publisher.PublishBookingStatusChanged(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, toBookingResp(b))
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
