package postgres

import (
	"context"
	"database/sql"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, vehicle_id, renter_id, booking_id, rating, COALESCE(comment, ''), is_hidden, created_on::text, updated_on::text`

func scanReview(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Review, error) {
	rv := &domain.Review{}
	err := row.Scan(&rv.ID, &rv.VehicleID, &rv.RenterID, &rv.BookingID, &rv.Rating, &rv.Comment, &rv.IsHidden, &rv.CreatedOn, &rv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (vehicle_id, renter_id, booking_id, rating, comment, is_hidden, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, review.VehicleID, review.RenterID, review.BookingID,
		review.Rating, review.Comment, review.IsHidden, time.Now(), time.Now()).Scan(&review.ID)
}

func (r *reviewRepository) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(r.db.QueryRowContext(ctx, query, id))
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1`
	return scanReview(r.db.QueryRowContext(ctx, query, bookingID))
}

func (r *reviewRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) ListByVehicle(ctx context.Context, vehicleID int32, includeHidden bool) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE vehicle_id = $1`
	if !includeHidden {
		query += " AND is_hidden = false"
	}
	query += " ORDER BY created_on DESC"
	return r.listQuery(ctx, query, vehicleID)
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_on DESC`
	return r.listQuery(ctx, query)
}

func (r *reviewRepository) SetHidden(ctx context.Context, id int32, hidden bool) error {
	query := `UPDATE reviews SET is_hidden=$1, updated_on=$2 WHERE id=$3`
	return guardedExec(ctx, r.db, query, hidden, time.Now(), id)
}

func (r *reviewRepository) RatingStats(ctx context.Context, vehicleID int32) (float64, int32, error) {
	query := `SELECT COALESCE(AVG(rating), 0), count(*) FROM reviews
	          WHERE vehicle_id = $1 AND is_hidden = false`
	var avg float64
	var total int32
	err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(&avg, &total)
	if err != nil {
		return 0, 0, err
	}
	return avg, total, nil
}

func (r *reviewRepository) OwnerRatingStats(ctx context.Context, ownerID int32) (float64, int64, error) {
	query := `SELECT COALESCE(AVG(r.rating), 0), count(*) FROM reviews r
	          JOIN vehicles v ON v.id = r.vehicle_id
	          WHERE v.owner_id = $1 AND r.is_hidden = false`
	var avg float64
	var total int64
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&avg, &total)
	if err != nil {
		return 0, 0, err
	}
	return avg, total, nil
}
