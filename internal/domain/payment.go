package domain

type PaymentStatus string

const (
	PaymentStatusCreated       PaymentStatus = "CREATED"
	PaymentStatusSuccess       PaymentStatus = "SUCCESS"
	PaymentStatusFailed        PaymentStatus = "FAILED"
	PaymentStatusRefundPending PaymentStatus = "REFUND_PENDING"
	PaymentStatusRefunded      PaymentStatus = "REFUNDED"
)

// CanTransitionTo reports whether a payment status change is legal.
// CREATED settles to SUCCESS or FAILED exactly once; the refund path
// runs SUCCESS -> REFUND_PENDING -> REFUNDED. FAILED and REFUNDED are
// terminal.
func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	switch s {
	case PaymentStatusCreated:
		return to == PaymentStatusSuccess || to == PaymentStatusFailed
	case PaymentStatusSuccess:
		return to == PaymentStatusRefundPending
	case PaymentStatusRefundPending:
		return to == PaymentStatusRefunded
	default:
		return false
	}
}

type Payment struct {
	ID                int32         `json:"id"`
	BookingID         *int32        `json:"booking_id,omitempty"` // Set once the booking is committed
	RenterID          int32         `json:"renter_id"`
	Renter            *User         `json:"renter,omitempty"`
	VehicleID         int32         `json:"vehicle_id"`
	Vehicle           *Vehicle      `json:"vehicle,omitempty"`
	// Requested rental window, captured at order time so verification
	// does not trust dates from the client a second time.
	BookingStartDate  string        `json:"booking_start_date"`
	BookingEndDate    string        `json:"booking_end_date"`
	AmountCents       int64         `json:"amount_cents"`
	Currency          string        `json:"currency"`
	RazorpayOrderID   string        `json:"razorpay_order_id"`
	RazorpayPaymentID *string       `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature *string       `json:"razorpay_signature,omitempty"`
	RazorpayRefundID  *string       `json:"razorpay_refund_id,omitempty"`
	Status            PaymentStatus `json:"status"`
	RefundedBy        *int32        `json:"refunded_by,omitempty"`
	RefundedOn        *string       `json:"refunded_on,omitempty"`
	CreatedOn         string        `json:"created_on"`
	UpdatedOn         string        `json:"updated_on"`
}

// PaymentFilter narrows payment list views
type PaymentFilter struct {
	Status    string
	VehicleID int32
	RenterID  int32
	StartDate string // created on/after
	EndDate   string // created on/before
	Search    string // matches gateway order/payment ids
}
