package shared

// Role is the role an authenticated user holds
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleStaff    Role = "staff"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleOwner, RoleStaff:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to the shop's back office
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleStaff
}

// Actor is the identity a request is executed on behalf of.
// The zero value is an anonymous caller (guest checkout, order tracking).
type Actor struct {
	UserID string
	Role   Role
}

// IsAuthenticated reports whether the actor carries a user id
func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}

// IsStaff reports whether the actor may act on any customer's data
func (a Actor) IsStaff() bool {
	return a.IsAuthenticated() && a.Role.IsStaff()
}

// UserIDPtr returns the user id as a nullable reference
func (a Actor) UserIDPtr() *string {
	if a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}
