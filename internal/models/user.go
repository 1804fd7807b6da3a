package models

// UserRole distinguishes customers from contractors
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleContractor UserRole = "contractor"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleContractor
}

// Label returns the Russian display name of the role
func (r UserRole) Label() string {
	switch r {
	case RoleCustomer:
		return "Заказчик"
	case RoleContractor:
		return "Подрядчик"
	default:
		return string(r)
	}
}

// User represents a registered marketplace user
type User struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email,omitempty"`
	Role           UserRole `json:"user_type"`
	Specialization string   `json:"specialization,omitempty"`
	Experience     *int     `json:"experience,omitempty"`
	IsVerified     bool     `json:"is_verified,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// Registration holds the details sent with a verification code
type Registration struct {
	Phone          string   `json:"phone"`
	Code           string   `json:"code"`
	Name           string   `json:"name,omitempty"`
	Email          string   `json:"email,omitempty"`
	Role           UserRole `json:"user_type"`
	Specialization string   `json:"specialization,omitempty"`
	Experience     *int     `json:"experience,omitempty"`
}
