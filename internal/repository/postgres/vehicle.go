package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"

	"github.com/lib/pq"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, owner_id, make, model, year, vehicle_type, category, location, price_per_day_cents, availability, images, COALESCE(description, ''), status, average_rating, total_reviews, created_on::text, updated_on::text`

func scanVehicle(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.VehicleType, &v.Category, &v.Location,
		&v.PricePerDayCents, &v.Availability, pq.Array(&v.Images), &v.Description, &v.Status,
		&v.AverageRating, &v.TotalReviews, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (owner_id, make, model, year, vehicle_type, category, location, price_per_day_cents, availability, images, description, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	return r.db.QueryRowContext(ctx, query, v.OwnerID, v.Make, v.Model, v.Year, v.VehicleType, v.Category,
		v.Location, v.PricePerDayCents, v.Availability, pq.Array(v.Images), v.Description, v.Status,
		time.Now(), time.Now()).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, vehicle_type=$4, category=$5, location=$6,
	          price_per_day_cents=$7, availability=$8, images=$9, description=$10, status=$11, updated_on=$12
	          WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.Year, v.VehicleType, v.Category, v.Location,
		v.PricePerDayCents, v.Availability, pq.Array(v.Images), v.Description, v.Status, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	query := `DELETE FROM vehicles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *vehicleRepository) SetStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
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

func (r *vehicleRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.listQuery(ctx, query, ownerID)
}

func (r *vehicleRepository) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = $1 ORDER BY created_on DESC`
	return r.listQuery(ctx, query, status)
}

func (r *vehicleRepository) SearchApproved(ctx context.Context, filter domain.VehicleSearchFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = 'approved'`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (make ILIKE $%d OR model ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.VehicleType != "" {
		query += fmt.Sprintf(" AND vehicle_type = $%d", argIdx)
		args = append(args, filter.VehicleType)
		argIdx++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.MinPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents >= $%d", argIdx)
		args = append(args, filter.MinPriceCents)
		argIdx++
	}
	if filter.MaxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents <= $%d", argIdx)
		args = append(args, filter.MaxPriceCents)
		argIdx++
	}

	query += " ORDER BY created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *vehicleRepository) UpdateRatingStats(ctx context.Context, id int32, average float64, total int32) error {
	query := `UPDATE vehicles SET average_rating=$1, total_reviews=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, average, total, time.Now(), id)
	return err
}

func (r *vehicleRepository) Counts(ctx context.Context) (*domain.VehicleCounts, error) {
	c := &domain.VehicleCounts{}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'approved'),
	                 count(*) FILTER (WHERE status = 'pending'),
	                 count(*) FILTER (WHERE status = 'rejected')
	          FROM vehicles`
	err := r.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Approved, &c.Pending, &c.Rejected)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *vehicleRepository) CountsByOwner(ctx context.Context, ownerID int32) (*domain.VehicleCounts, error) {
	c := &domain.VehicleCounts{}
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'approved'),
	                 count(*) FILTER (WHERE status = 'pending'),
	                 count(*) FILTER (WHERE status = 'rejected')
	          FROM vehicles WHERE owner_id = $1`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&c.Total, &c.Approved, &c.Pending, &c.Rejected)
	if err != nil {
		return nil, err
	}
	return c, nil
}
