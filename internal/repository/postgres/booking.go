package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, renter_id, vehicle_id, start_date, end_date, status, created_on::text, updated_on::text`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.RenterID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.Status, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) CreateTx(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	query := `INSERT INTO bookings (renter_id, vehicle_id, start_date, end_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return tx.QueryRowContext(ctx, query, b.RenterID, b.VehicleID, b.StartDate, b.EndDate, b.Status, time.Now(), time.Now()).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const overlapQuery = `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE vehicle_id = $1 AND status = 'ACTIVE'
	            AND start_date <= $2 AND end_date >= $3
	          LIMIT 1`

func (r *bookingRepository) FindOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, overlapQuery, vehicleID, endDate, startDate))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) FindOverlappingTx(ctx context.Context, tx *sql.Tx, vehicleID int32, startDate, endDate string) (*domain.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx, overlapQuery, vehicleID, endDate, startDate))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// LockVehicleTx takes a transaction-scoped advisory lock keyed by the
// vehicle id so concurrent booking commits for the same vehicle
// serialize on the overlap re-check.
func (r *bookingRepository) LockVehicleTx(ctx context.Context, tx *sql.Tx, vehicleID int32) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, vehicleID)
	return err
}

func (r *bookingRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func appendBookingFilter(query string, args []interface{}, filter domain.BookingFilter, argIdx int) (string, []interface{}, int) {
	if filter.Status != "" {
		query += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.StartDate != "" {
		query += fmt.Sprintf(" AND b.start_date >= $%d", argIdx)
		args = append(args, filter.StartDate)
		argIdx++
	}
	if filter.EndDate != "" {
		query += fmt.Sprintf(" AND b.start_date <= $%d", argIdx)
		args = append(args, filter.EndDate)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM vehicles v WHERE v.id = b.vehicle_id AND (v.make ILIKE $%d OR v.model ILIKE $%d))", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	return query, args, argIdx
}

const bookingColumnsQualified = `b.id, b.renter_id, b.vehicle_id, b.start_date, b.end_date, b.status, b.created_on::text, b.updated_on::text`

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumnsQualified + ` FROM bookings b WHERE b.renter_id = $1`
	args := []interface{}{renterID}
	query, args, _ = appendBookingFilter(query, args, filter, 2)
	query += " ORDER BY b.created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumnsQualified + ` FROM bookings b
	          WHERE b.vehicle_id IN (SELECT id FROM vehicles WHERE owner_id = $1)`
	args := []interface{}{ownerID}
	query, args, _ = appendBookingFilter(query, args, filter, 2)
	query += " ORDER BY b.created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *bookingRepository) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumnsQualified + ` FROM bookings b WHERE true`
	args := []interface{}{}
	query, args, _ = appendBookingFilter(query, args, filter, 1)
	query += " ORDER BY b.created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *bookingRepository) ListBookedDates(ctx context.Context, vehicleID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE vehicle_id = $1 AND status = 'ACTIVE' ORDER BY start_date`
	return r.listQuery(ctx, query, vehicleID)
}

func (r *bookingRepository) CompleteExpired(ctx context.Context, today string) ([]domain.Booking, error) {
	query := `UPDATE bookings SET status = 'COMPLETED', updated_on = NOW()
	          WHERE status = 'ACTIVE' AND end_date < $1
	          RETURNING ` + bookingColumns
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		completed = append(completed, *b)
	}
	return completed, rows.Err()
}

func (r *bookingRepository) Counts(ctx context.Context) (*domain.BookingCounts, error) {
	c := &domain.BookingCounts{}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'ACTIVE'),
	                 count(*) FILTER (WHERE status = 'CANCELLED'),
	                 count(*) FILTER (WHERE status = 'COMPLETED')
	          FROM bookings`
	err := r.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Active, &c.Cancelled, &c.Completed)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *bookingRepository) CountsByOwner(ctx context.Context, ownerID int32) (*domain.BookingCounts, error) {
	c := &domain.BookingCounts{}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'ACTIVE'),
	                 count(*) FILTER (WHERE status = 'CANCELLED'),
	                 count(*) FILTER (WHERE status = 'COMPLETED')
	          FROM bookings WHERE vehicle_id IN (SELECT id FROM vehicles WHERE owner_id = $1)`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&c.Total, &c.Active, &c.Cancelled, &c.Completed)
	if err != nil {
		return nil, err
	}
	return c, nil
}
