package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// setupMockDB wraps go-sqlmock in the DB interface the repositories consume
func setupMockDB(t *testing.T) (DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := &PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return db, mock, func() { mockDB.Close() }
}

var bookingRows = []string{
	"id", "user_ref", "tour_ref", "booking_date", "party_size",
	"special_requirements", "total_price", "status", "created_at", "updated_at",
}

func TestBookingRepositorySave(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewBookingRepository(db)

	t.Run("Insert Assigns ID And Timestamps", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				sqlmock.AnyArg(), "alice", "tour-1", sqlmock.AnyArg(),
				3, nil, 300.00, models.BookingStatusPending,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		booking := &models.Booking{
			UserRef:     "alice",
			TourRef:     "tour-1",
			BookingDate: now.AddDate(0, 1, 0),
			PartySize:   3,
			TotalPrice:  300.00,
			Status:      models.BookingStatusPending,
		}

		require.NoError(t, repo.Save(booking))
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, now, booking.CreatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Preserves ID", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs(
				"booking-1", sqlmock.AnyArg(), 3, nil, 300.00,
				models.BookingStatusCancelled,
			).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		booking := &models.Booking{
			ID:          "booking-1",
			UserRef:     "alice",
			TourRef:     "tour-1",
			BookingDate: now.AddDate(0, 1, 0),
			PartySize:   3,
			TotalPrice:  300.00,
			Status:      models.BookingStatusCancelled,
		}

		require.NoError(t, repo.Save(booking))
		assert.Equal(t, "booking-1", booking.ID)
		assert.Equal(t, now, booking.UpdatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Of Missing Record", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE bookings`).
			WillReturnError(sql.ErrNoRows)

		booking := &models.Booking{ID: "missing", Status: models.BookingStatusPending}
		err := repo.Save(booking)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		booking := &models.Booking{Status: models.BookingStatusPending}
		err := repo.Save(booking)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`FROM bookings WHERE id`).
			WithArgs("booking-1").
			WillReturnRows(sqlmock.NewRows(bookingRows).AddRow(
				"booking-1", "alice", "tour-1", now.AddDate(0, 1, 0), 3,
				nil, 300.00, "PENDING", now, now,
			))

		booking, err := repo.GetByID("booking-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", booking.UserRef)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, 300.00, booking.TotalPrice)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM bookings WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID("missing")
		require.Error(t, err)
		assert.Nil(t, booking)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetByUser(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewBookingRepository(db)

	now := time.Now()
	mock.ExpectQuery(`WHERE user_ref`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(bookingRows).
			AddRow("booking-2", "alice", "tour-1", now, 2, nil, 200.00, "PENDING", now, now).
			AddRow("booking-1", "alice", "tour-1", now, 1, nil, 100.00, "CONFIRMED", now.Add(-time.Hour), now))

	bookings, err := repo.GetByUser("alice")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "booking-2", bookings[0].ID)
	assert.Equal(t, "booking-1", bookings[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryGetByTourAndStatus(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewBookingRepository(db)

	now := time.Now()
	mock.ExpectQuery(`WHERE tour_ref = \$1 AND status = \$2`).
		WithArgs("tour-1", models.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows(bookingRows).
			AddRow("booking-1", "alice", "tour-1", now, 3, nil, 300.00, "CONFIRMED", now, now))

	bookings, err := repo.GetByTourAndStatus("tour-1", models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.BookingStatusConfirmed, bookings[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryDelete(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings WHERE id`).
			WithArgs("booking-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete("booking-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings WHERE id`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete("missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
