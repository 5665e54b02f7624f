package domain

// UserCounts breaks down registered users by role
type UserCounts struct {
	Total   int64 `json:"total"`
	Admins  int64 `json:"admins"`
	Owners  int64 `json:"owners"`
	Renters int64 `json:"renters"`
}

// VehicleCounts breaks down vehicles by moderation status
type VehicleCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

// BookingCounts breaks down bookings by status
type BookingCounts struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// AdminOverview is the platform-wide analytics summary
type AdminOverview struct {
	Users    UserCounts    `json:"users"`
	Vehicles VehicleCounts `json:"vehicles"`
	Bookings BookingCounts `json:"bookings"`
}

// OwnerOverview summarizes a single owner's fleet
type OwnerOverview struct {
	Vehicles      VehicleCounts `json:"vehicles"`
	Bookings      BookingCounts `json:"bookings"`
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
}
