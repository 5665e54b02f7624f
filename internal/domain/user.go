package domain

type UserRole string

const (
	RoleRenter UserRole = "RENTER"
	RoleOwner  UserRole = "OWNER"
	RoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"is_active"`
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}

// UserFilter narrows admin user list views
type UserFilter struct {
	Role   string
	Search string // matches name/email
}
