package domain

type Review struct {
	ID        int32  `json:"id"`
	VehicleID int32  `json:"vehicle_id"`
	RenterID  int32  `json:"renter_id"`
	Renter    *User  `json:"renter,omitempty"`
	BookingID int32  `json:"booking_id"`
	Rating    int32  `json:"rating"` // 1..5
	Comment   string `json:"comment"`
	IsHidden  bool   `json:"is_hidden"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
