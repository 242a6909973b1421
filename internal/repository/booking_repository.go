package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// BookingRepo provides CRUD over the bookings table. Reads preload the
// owning user and room so handlers can embed their summaries without a
// second round trip.
type BookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo returns a repository bound to the given database handle.
func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingFilter narrows a listing. UserID and RoomID are exact matches.
// Date selects a single server-local calendar day on start_time and wins
// over From/To when both are supplied; From/To form an open range, also
// on start_time.
type BookingFilter struct {
	UserID *uint
	RoomID *uint
	Date   *time.Time
	From   *time.Time
	To     *time.Time
}

// Create inserts a booking and reloads it with user and room preloaded.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").Preload("Room").First(b, b.ID).Error
}

// GetByID fetches one booking with its user and room.
func (r *BookingRepo) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).Preload("User").Preload("Room").First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns bookings matching the filter, ascending by start time.
// The full result set is returned; there is no pagination.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{}).Preload("User").Preload("Room")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	switch {
	case f.Date != nil:
		day := startOfDay(*f.Date)
		q = q.Where("start_time >= ? AND start_time < ?", day, day.AddDate(0, 0, 1))
	default:
		if f.From != nil {
			q = q.Where("start_time >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("start_time <= ?", *f.To)
		}
	}
	var bookings []model.Booking
	err := q.Order("start_time asc").Find(&bookings).Error
	return bookings, err
}

// Update applies a partial update: only the columns present in fields are
// written, everything else is left untouched. The updated row is returned
// with user and room preloaded.
func (r *BookingRepo) Update(ctx context.Context, id uint, fields map[string]any) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&b).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking by id.
func (r *BookingRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountStartingBetween counts bookings whose start time falls in [from, to).
func (r *BookingRepo) CountStartingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("start_time >= ? AND start_time < ?", from, to).
		Count(&n).Error
	return n, err
}

// UserBookingStats aggregates one user's booking counts for the profile
// dashboard.
type UserBookingStats struct {
	Total    int64 `json:"total"`
	Upcoming int64 `json:"upcoming"`
	Today    int64 `json:"today"`
	Week     int64 `json:"week"`
}

// StatsForUser computes booking counts for a user relative to now:
// everything, future start times, starts within today, and starts within
// the current Monday-based calendar week.
func (r *BookingRepo) StatsForUser(ctx context.Context, userID uint, now time.Time) (*UserBookingStats, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID)
	}
	var s UserBookingStats
	if err := base().Count(&s.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("start_time > ?", now).Count(&s.Upcoming).Error; err != nil {
		return nil, err
	}
	day := startOfDay(now)
	if err := base().Where("start_time >= ? AND start_time < ?", day, day.AddDate(0, 0, 1)).Count(&s.Today).Error; err != nil {
		return nil, err
	}
	week := startOfWeek(now)
	if err := base().Where("start_time >= ? AND start_time < ?", week, week.AddDate(0, 0, 7)).Count(&s.Week).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Monday at 00:00 in t's location.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
