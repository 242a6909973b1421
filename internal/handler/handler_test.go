package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/router"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

const testJWTSecret = "handler-test-secret"

// testApp is a fully wired API over an in-memory sqlite database, served
// through the real route registration so middleware placement is covered
// too.
type testApp struct {
	e        *echo.Echo
	db       *gorm.DB
	users    *repository.UserRepo
	rooms    *repository.RoomRepo
	bookings *repository.BookingRepo
	stats    *handler.StatsHandler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Room{}, &model.Booking{}))

	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	cfg := config.Config{JWTSecret: testJWTSecret, BcryptCost: bcrypt.MinCost}
	stats := handler.NewStatsHandler(rooms, bookings)

	e := echo.New()
	router.RegisterAPI(e, router.APIHandlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Rooms:    handler.NewRoomHandler(rooms),
		Bookings: handler.NewBookingHandler(bookings, rooms, false),
		Stats:    stats,
	}, cfg, nil)

	return &testApp{e: e, db: db, users: users, rooms: rooms, bookings: bookings, stats: stats}
}

func (a *testApp) seedUser(t *testing.T, email, role string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Email: email, Name: "Test User", PasswordHash: hash, Role: role}
	require.NoError(t, a.db.Create(u).Error)
	return u
}

func (a *testApp) seedRoom(t *testing.T, name string, capacity int) *model.Room {
	t.Helper()
	r := &model.Room{Name: name, Capacity: capacity, Location: "Floor 1", Status: model.RoomAvailable}
	require.NoError(t, a.db.Create(r).Error)
	return r
}

func (a *testApp) cookieFor(t *testing.T, u *model.User) *http.Cookie {
	t.Helper()
	token, _, err := utils.IssueSessionToken(testJWTSecret, u.ID, u.Email, u.Name, u.Role)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

// request issues a JSON request against the app and returns the recorder.
// A nil body sends no payload; a nil cookie sends no session.
func (a *testApp) request(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// findCookie looks up a Set-Cookie entry on the response by name.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func (a *testApp) countBookings(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(&model.Booking{}).Count(&n).Error)
	return n
}
