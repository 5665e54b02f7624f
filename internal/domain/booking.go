package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// CanTransitionTo reports whether a booking status change is legal.
// CANCELLED and COMPLETED are terminal.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case BookingStatusActive:
		return to == BookingStatusCancelled || to == BookingStatusCompleted
	default:
		return false
	}
}

type Booking struct {
	ID        int32         `json:"id"`
	RenterID  int32         `json:"renter_id"`
	Renter    *User         `json:"renter,omitempty"` // Populated on owner/admin views
	VehicleID int32         `json:"vehicle_id"`
	Vehicle   *Vehicle      `json:"vehicle,omitempty"`
	StartDate string        `json:"start_date"` // yyyy-mm-dd
	EndDate   string        `json:"end_date"`   // yyyy-mm-dd
	Status    BookingStatus `json:"status"`
	CreatedOn string        `json:"created_on"`
	UpdatedOn string        `json:"updated_on"`
}

// Started reports whether the booking's start date is today or earlier.
// Cancellation is blocked from the start date onward.
func (b *Booking) Started(now time.Time) bool {
	return b.StartDate <= now.Format("2006-01-02")
}

// Expired reports whether the booking's end date has passed.
func (b *Booking) Expired(now time.Time) bool {
	return b.EndDate < now.Format("2006-01-02")
}

// BookingFilter narrows booking list views
type BookingFilter struct {
	Status    string
	Search    string // matches vehicle make/model
	StartDate string // bookings starting on/after
	EndDate   string // bookings starting on/before
}
