package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"wheelshare-backend/internal/domain"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "renter_id", "vehicle_id", "start_date", "end_date", "status", "created_on", "updated_on",
	})
}

func TestBookingRepository_CreateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		b := &domain.Booking{
			RenterID:  1,
			VehicleID: 7,
			StartDate: "2026-06-01",
			EndDate:   "2026-06-03",
			Status:    domain.BookingStatusActive,
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(b.RenterID, b.VehicleID, b.StartDate, b.EndDate, b.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err = repo.CreateTx(ctx, tx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), b.ID)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(42), domain.BookingStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 42, domain.BookingStatusActive, domain.BookingStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("NoRowMatchesExpectedStatus", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(42), domain.BookingStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 42, domain.BookingStatusActive, domain.BookingStatusCancelled)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestBookingRepository_FindOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := bookingRows().
			AddRow(42, 1, 7, "2026-06-01", "2026-06-03", "ACTIVE", "2026-05-20 10:00:00", "2026-05-20 10:00:00")

		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs(int32(7), "2026-06-05", "2026-06-02").
			WillReturnRows(rows)

		booking, err := repo.FindOverlapping(ctx, 7, "2026-06-02", "2026-06-05")
		assert.NoError(t, err)
		assert.NotNil(t, booking)
		assert.Equal(t, int32(42), booking.ID)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs(int32(7), "2026-06-05", "2026-06-02").
			WillReturnRows(bookingRows())

		booking, err := repo.FindOverlapping(ctx, 7, "2026-06-02", "2026-06-05")
		assert.NoError(t, err)
		assert.Nil(t, booking)
	})
}

func TestBookingRepository_CompleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("ReturnsCompletedBookings", func(t *testing.T) {
		rows := bookingRows().
			AddRow(42, 1, 7, "2026-05-01", "2026-05-03", "COMPLETED", "2026-04-20 10:00:00", "2026-05-04 00:15:00").
			AddRow(43, 2, 8, "2026-05-02", "2026-05-03", "COMPLETED", "2026-04-21 10:00:00", "2026-05-04 00:15:00")

		mock.ExpectQuery("UPDATE bookings SET status = 'COMPLETED'").
			WithArgs("2026-05-04").
			WillReturnRows(rows)

		completed, err := repo.CompleteExpired(ctx, "2026-05-04")
		assert.NoError(t, err)
		assert.Len(t, completed, 2)
		assert.Equal(t, domain.BookingStatusCompleted, completed[0].Status)
	})

	t.Run("NothingExpired", func(t *testing.T) {
		mock.ExpectQuery("UPDATE bookings SET status = 'COMPLETED'").
			WithArgs("2026-05-04").
			WillReturnRows(bookingRows())

		completed, err := repo.CompleteExpired(ctx, "2026-05-04")
		assert.NoError(t, err)
		assert.Empty(t, completed)
	})
}

func TestBookingRepository_ListBookedDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	rows := bookingRows().
		AddRow(42, 1, 7, "2026-06-01", "2026-06-03", "ACTIVE", "2026-05-20 10:00:00", "2026-05-20 10:00:00")

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int32(7)).
		WillReturnRows(rows)

	bookings, err := repo.ListBookedDates(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, "2026-06-01", bookings[0].StartDate)
}
