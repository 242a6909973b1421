package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	u := &model.User{Email: "carol@example.com", Name: "Carol", PasswordHash: "h", Role: model.RoleUser}
	require.NoError(t, repo.Create(ctx(), u))
	require.NotZero(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", byID.Name)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	require.NoError(t, repo.Create(ctx(), &model.User{Email: "dup@example.com", Name: "A", PasswordHash: "h", Role: model.RoleUser}))
	err := repo.Create(ctx(), &model.User{Email: "dup@example.com", Name: "B", PasswordHash: "h", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))

	_, err := repo.GetByEmail(ctx(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByID(ctx(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_CountByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	seedUser(t, db, "n@example.com")

	n, err := repo.CountByEmail(ctx(), "n@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountByEmail(ctx(), "absent@example.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}
