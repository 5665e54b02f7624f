package postgres

import (
	"context"
	"database/sql"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type inquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) repository.InquiryRepository {
	return &inquiryRepository{db: db}
}

const inquiryColumns = `id, user_id, subject, message, COALESCE(reply, ''), status, created_on::text, updated_on::text`

func scanInquiry(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Inquiry, error) {
	q := &domain.Inquiry{}
	err := row.Scan(&q.ID, &q.UserID, &q.Subject, &q.Message, &q.Reply, &q.Status, &q.CreatedOn, &q.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	query := `INSERT INTO inquiries (user_id, subject, message, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, inquiry.UserID, inquiry.Subject, inquiry.Message,
		inquiry.Status, time.Now(), time.Now()).Scan(&inquiry.ID)
}

func (r *inquiryRepository) GetByID(ctx context.Context, id int32) (*domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`
	return scanInquiry(r.db.QueryRowContext(ctx, query, id))
}

func (r *inquiryRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []domain.Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, *q)
	}
	return inquiries, rows.Err()
}

func (r *inquiryRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE user_id = $1 ORDER BY created_on DESC`
	return r.listQuery(ctx, query, userID)
}

func (r *inquiryRepository) ListAll(ctx context.Context, status string) ([]domain.Inquiry, error) {
	if status != "" {
		query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE status = $1 ORDER BY created_on DESC`
		return r.listQuery(ctx, query, status)
	}
	query := `SELECT ` + inquiryColumns + ` FROM inquiries ORDER BY created_on DESC`
	return r.listQuery(ctx, query)
}

func (r *inquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	query := `UPDATE inquiries SET reply=$1, status=$2, updated_on=$3 WHERE id=$4`
	return guardedExec(ctx, r.db, query, inquiry.Reply, inquiry.Status, time.Now(), inquiry.ID)
}
