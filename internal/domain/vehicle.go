package domain

type VehicleStatus string

const (
	VehicleStatusPending  VehicleStatus = "pending"
	VehicleStatusApproved VehicleStatus = "approved"
	VehicleStatusRejected VehicleStatus = "rejected"
)

type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeSUV  VehicleType = "suv"
)

type VehicleCategory string

const (
	VehicleCategoryEconomy  VehicleCategory = "economy"
	VehicleCategoryLuxury   VehicleCategory = "luxury"
	VehicleCategoryElectric VehicleCategory = "electric"
)

type Vehicle struct {
	ID               int32           `json:"id"`
	OwnerID          int32           `json:"owner_id"`
	Owner            *User           `json:"owner,omitempty"` // Populated when fetching vehicle details
	Make             string          `json:"make"`
	Model            string          `json:"model"`
	Year             int32           `json:"year"`
	VehicleType      VehicleType     `json:"vehicle_type"`
	Category         VehicleCategory `json:"category"`
	Location         string          `json:"location"`
	PricePerDayCents int64           `json:"price_per_day_cents"`
	Availability     bool            `json:"availability"`
	Images           []string        `json:"images"`
	Description      string          `json:"description"`
	Status           VehicleStatus   `json:"status"`
	AverageRating    float64         `json:"average_rating"`
	TotalReviews     int32           `json:"total_reviews"`
	CreatedOn        string          `json:"created_on"`
	UpdatedOn        string          `json:"updated_on"`
}

// Bookable reports whether renters may book the vehicle. Only vehicles
// that passed moderation and are marked available qualify.
func (v *Vehicle) Bookable() bool {
	return v.Status == VehicleStatusApproved && v.Availability
}

// VehicleSearchFilter narrows the approved-vehicle listing
type VehicleSearchFilter struct {
	Search        string
	VehicleType   string
	Location      string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
}
