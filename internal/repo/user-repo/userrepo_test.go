package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/kudiwallet/kudiwallet/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)

	userID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name: "Existing user returned",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "full_name", "email", "google_id", "created_at"}).
					AddRow(userID, "Ada Obi", "ada@example.com", "google-123", now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, full_name, email, google_id, created_at FROM users WHERE id = $1`)).
					WithArgs(userID).
					WillReturnRows(rows)
			},
			result: &domain.User{
				ID:        userID,
				FullName:  "Ada Obi",
				Email:     "ada@example.com",
				GoogleID:  "google-123",
				CreatedAt: now,
			},
		},
		{
			name: "Unknown user returns nil",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, full_name, email, google_id, created_at FROM users WHERE id = $1`)).
					WithArgs(userID).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, full_name, email, google_id, created_at FROM users WHERE id = $1`)).
					WithArgs(userID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetByGoogleID(t *testing.T) {
	repo, mock := NewMock(t)

	userID := uuid.New()
	now := time.Now()

	t.Run("Existing google id returned", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "full_name", "email", "google_id", "created_at"}).
			AddRow(userID, "Ada Obi", "ada@example.com", "google-123", now)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, full_name, email, google_id, created_at FROM users WHERE google_id = $1`)).
			WithArgs("google-123").
			WillReturnRows(rows)

		result, err := repo.GetByGoogleID(context.Background(), "google-123")
		assert.NoError(t, err)
		assert.Equal(t, userID, result.ID)
	})

	t.Run("Unknown google id returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, full_name, email, google_id, created_at FROM users WHERE google_id = $1`)).
			WithArgs("google-999").
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.GetByGoogleID(context.Background(), "google-999")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	user := &domain.User{
		ID:       uuid.New(),
		FullName: "Ada Obi",
		Email:    "ada@example.com",
		GoogleID: "google-123",
	}
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates user",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO users (id, full_name, email, google_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`)).
					WithArgs(user.ID, user.FullName, user.Email, user.GoogleID).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO users (id, full_name, email, google_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`)).
					WithArgs(user.ID, user.FullName, user.Email, user.GoogleID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), user)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, now, result.CreatedAt)
			}
		})
	}
}
