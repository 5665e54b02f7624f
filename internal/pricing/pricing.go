// Package pricing computes rental quotes from calendar date ranges.
package pricing

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a date truncated
// to midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %v", err)
	}
	return d, nil
}

// RentalDays returns the billable day count for an inclusive [start,end]
// date range: both endpoints are charged, so Jan 10 through Jan 13 is
// four days. End must not be before start.
func RentalDays(startDate, endDate string) (int64, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date must be on or after start date")
	}
	return int64(end.Sub(start).Hours()/24) + 1, nil
}

// RentalCost returns the total charge in cents for the inclusive date
// range at the given daily rate.
func RentalCost(startDate, endDate string, pricePerDayCents int64) (days int64, totalCents int64, err error) {
	days, err = RentalDays(startDate, endDate)
	if err != nil {
		return 0, 0, err
	}
	return days, days * pricePerDayCents, nil
}
