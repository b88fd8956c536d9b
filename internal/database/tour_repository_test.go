package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

var tourRows = []string{
	"id", "name", "description", "destination", "duration_days", "price",
	"start_date", "end_date", "available_slots", "max_group_size",
	"image_url", "type", "is_available", "created_at", "updated_at",
}

func TestTourRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTourRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`FROM tours WHERE id`).
			WithArgs("tour-1").
			WillReturnRows(sqlmock.NewRows(tourRows).AddRow(
				"tour-1", "Highland Trek", nil, "Scotland", 5, 100.00,
				now, now.AddDate(0, 0, 5), 10, 6, nil, "ADVENTURE", true,
				now, now,
			))

		tour, err := repo.GetByID("tour-1")
		require.NoError(t, err)
		assert.Equal(t, "Highland Trek", tour.Name)
		assert.Equal(t, 100.00, tour.Price)
		assert.True(t, tour.IsAvailable)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM tours WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		tour, err := repo.GetByID("missing")
		require.Error(t, err)
		assert.Nil(t, tour)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTourRepositoryReserveSlots(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTourRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE tours`).
			WithArgs("tour-1", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ReserveSlots("tour-1", 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Capacity", func(t *testing.T) {
		// The conditional UPDATE touches no row when available_slots < n.
		mock.ExpectExec(`UPDATE tours`).
			WithArgs("tour-1", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReserveSlots("tour-1", 99)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTourRepositoryReleaseSlots(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTourRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE tours`).
			WithArgs("tour-1", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ReleaseSlots("tour-1", 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Tour", func(t *testing.T) {
		mock.ExpectExec(`UPDATE tours`).
			WithArgs("missing", 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReleaseSlots("missing", 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTourRepositorySearchByDestination(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTourRepository(db)

	now := time.Now()
	mock.ExpectQuery(`WHERE destination ILIKE`).
		WithArgs("scot").
		WillReturnRows(sqlmock.NewRows(tourRows).AddRow(
			"tour-1", "Highland Trek", nil, "Scotland", 5, 100.00,
			now, now.AddDate(0, 0, 5), 10, 6, nil, "ADVENTURE", true,
			now, now,
		))

	tours, err := repo.SearchByDestination("scot")
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "Scotland", tours[0].Destination)

	assert.NoError(t, mock.ExpectationsWereMet())
}
