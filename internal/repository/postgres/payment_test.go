package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"wheelshare-backend/internal/domain"
)

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "renter_id", "vehicle_id", "booking_start_date", "booking_end_date",
		"amount_cents", "currency", "razorpay_order_id", "razorpay_payment_id", "razorpay_signature",
		"razorpay_refund_id", "status", "refunded_by", "refunded_on", "created_on", "updated_on",
	})
}

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &domain.Payment{
		RenterID:         1,
		VehicleID:        7,
		BookingStartDate: "2026-06-01",
		BookingEndDate:   "2026-06-03",
		AmountCents:      7500,
		Currency:         "INR",
		RazorpayOrderID:  "order_abc",
		Status:           domain.PaymentStatusCreated,
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(p.RenterID, p.VehicleID, p.BookingStartDate, p.BookingEndDate, p.AmountCents,
			p.Currency, p.RazorpayOrderID, p.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	err = repo.Create(ctx, p)
	assert.NoError(t, err)
	assert.Equal(t, int32(11), p.ID)
}

func TestPaymentRepository_GetByOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := paymentRows().
			AddRow(11, nil, 1, 7, "2026-06-01", "2026-06-03", 7500, "INR", "order_abc",
				nil, nil, nil, "CREATED", nil, nil, "2026-05-20 10:00:00", "2026-05-20 10:00:00")

		mock.ExpectQuery("SELECT (.+) FROM payments WHERE razorpay_order_id").
			WithArgs("order_abc").
			WillReturnRows(rows)

		payment, err := repo.GetByOrderID(ctx, "order_abc")
		assert.NoError(t, err)
		assert.Equal(t, int32(11), payment.ID)
		assert.Nil(t, payment.BookingID)
		assert.Equal(t, domain.PaymentStatusCreated, payment.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE razorpay_order_id").
			WithArgs("order_missing").
			WillReturnRows(paymentRows())

		_, err := repo.GetByOrderID(ctx, "order_missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPaymentRepository_MarkSucceededTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		mock.ExpectExec("UPDATE payments SET status='SUCCESS'").
			WithArgs("pay_xyz", "sig", sqlmock.AnyArg(), "order_abc").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.MarkSucceededTx(ctx, tx, "order_abc", "pay_xyz", "sig")
		assert.NoError(t, err)
	})

	t.Run("AlreadySettled", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		mock.ExpectExec("UPDATE payments SET status='SUCCESS'").
			WithArgs("pay_xyz", "sig", sqlmock.AnyArg(), "order_abc").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.MarkSucceededTx(ctx, tx, "order_abc", "pay_xyz", "sig")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPaymentRepository_RequestRefund(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status='REFUND_PENDING'").
			WithArgs(sqlmock.AnyArg(), int32(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RequestRefund(ctx, 11)
		assert.NoError(t, err)
	})

	t.Run("NotInSuccessState", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status='REFUND_PENDING'").
			WithArgs(sqlmock.AnyArg(), int32(11)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RequestRefund(ctx, 11)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPaymentRepository_MarkRefunded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE payments SET status='REFUNDED'").
		WithArgs("rfnd_123", int32(3), sqlmock.AnyArg(), int32(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkRefunded(ctx, 11, "rfnd_123", 3)
	assert.NoError(t, err)
}

func TestPaymentRepository_ExpireStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	cutoff := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE payments SET status='FAILED'").
		WithArgs(sqlmock.AnyArg(), cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	expired, err := repo.ExpireStale(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
