package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, booking_id, renter_id, vehicle_id, booking_start_date, booking_end_date, amount_cents, currency, razorpay_order_id, razorpay_payment_id, razorpay_signature, razorpay_refund_id, status, refunded_by, refunded_on::text, created_on::text, updated_on::text`

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.RenterID, &p.VehicleID, &p.BookingStartDate, &p.BookingEndDate, &p.AmountCents, &p.Currency,
		&p.RazorpayOrderID, &p.RazorpayPaymentID, &p.RazorpaySignature, &p.RazorpayRefundID,
		&p.Status, &p.RefundedBy, &p.RefundedOn, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (renter_id, vehicle_id, booking_start_date, booking_end_date, amount_cents, currency, razorpay_order_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.RenterID, p.VehicleID, p.BookingStartDate, p.BookingEndDate,
		p.AmountCents, p.Currency, p.RazorpayOrderID, p.Status, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE razorpay_order_id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, orderID))
}

func guardedExec(ctx context.Context, execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}, query string, args ...interface{}) error {
	res, err := execer.ExecContext(ctx, query, args...)
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

func (r *paymentRepository) MarkFailedByOrderID(ctx context.Context, orderID string) error {
	query := `UPDATE payments SET status='FAILED', updated_on=$1
	          WHERE razorpay_order_id=$2 AND status='CREATED'`
	return guardedExec(ctx, r.db, query, time.Now(), orderID)
}

func (r *paymentRepository) MarkSucceededTx(ctx context.Context, tx *sql.Tx, orderID, gatewayPaymentID, signature string) error {
	query := `UPDATE payments SET status='SUCCESS', razorpay_payment_id=$1, razorpay_signature=$2, updated_on=$3
	          WHERE razorpay_order_id=$4 AND status='CREATED'`
	return guardedExec(ctx, tx, query, gatewayPaymentID, signature, time.Now(), orderID)
}

func (r *paymentRepository) LinkBookingTx(ctx context.Context, tx *sql.Tx, orderID string, bookingID int32) error {
	query := `UPDATE payments SET booking_id=$1, updated_on=$2 WHERE razorpay_order_id=$3`
	return guardedExec(ctx, tx, query, bookingID, time.Now(), orderID)
}

func (r *paymentRepository) RequestRefund(ctx context.Context, id int32) error {
	query := `UPDATE payments SET status='REFUND_PENDING', updated_on=$1
	          WHERE id=$2 AND status='SUCCESS'`
	return guardedExec(ctx, r.db, query, time.Now(), id)
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, id int32, refundID string, adminID int32) error {
	query := `UPDATE payments SET status='REFUNDED', razorpay_refund_id=$1, refunded_by=$2, refunded_on=$3, updated_on=$3
	          WHERE id=$4 AND status='REFUND_PENDING'`
	return guardedExec(ctx, r.db, query, refundID, adminID, time.Now(), id)
}

func (r *paymentRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

const paymentColumnsQualified = `p.id, p.booking_id, p.renter_id, p.vehicle_id, p.booking_start_date, p.booking_end_date, p.amount_cents, p.currency, p.razorpay_order_id, p.razorpay_payment_id, p.razorpay_signature, p.razorpay_refund_id, p.status, p.refunded_by, p.refunded_on::text, p.created_on::text, p.updated_on::text`

func appendPaymentFilter(query string, args []interface{}, filter domain.PaymentFilter, argIdx int) (string, []interface{}, int) {
	if filter.Status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.VehicleID != 0 {
		query += fmt.Sprintf(" AND p.vehicle_id = $%d", argIdx)
		args = append(args, filter.VehicleID)
		argIdx++
	}
	if filter.RenterID != 0 {
		query += fmt.Sprintf(" AND p.renter_id = $%d", argIdx)
		args = append(args, filter.RenterID)
		argIdx++
	}
	if filter.StartDate != "" {
		query += fmt.Sprintf(" AND p.created_on >= $%d", argIdx)
		args = append(args, filter.StartDate)
		argIdx++
	}
	if filter.EndDate != "" {
		query += fmt.Sprintf(" AND p.created_on <= $%d", argIdx)
		args = append(args, filter.EndDate)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.razorpay_order_id ILIKE $%d OR p.razorpay_payment_id ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	return query, args, argIdx
}

func (r *paymentRepository) ListByRenter(ctx context.Context, renterID int32, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumnsQualified + ` FROM payments p WHERE p.renter_id = $1`
	args := []interface{}{renterID}
	query, args, _ = appendPaymentFilter(query, args, filter, 2)
	query += " ORDER BY p.created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *paymentRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumnsQualified + ` FROM payments p
	          WHERE p.status IN ('SUCCESS', 'REFUND_PENDING', 'REFUNDED')
	            AND p.vehicle_id IN (SELECT id FROM vehicles WHERE owner_id = $1)
	          ORDER BY p.created_on DESC`
	return r.listQuery(ctx, query, ownerID)
}

func (r *paymentRepository) ListAll(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumnsQualified + ` FROM payments p WHERE true`
	args := []interface{}{}
	query, args, _ = appendPaymentFilter(query, args, filter, 1)
	query += " ORDER BY p.created_on DESC"
	return r.listQuery(ctx, query, args...)
}

func (r *paymentRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE payments SET status='FAILED', updated_on=$1
	          WHERE status='CREATED' AND created_on < $2`
	res, err := r.db.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
