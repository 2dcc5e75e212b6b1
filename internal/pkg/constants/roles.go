package constants

const (
	Customer = "Customer"
	Mechanic = "Mechanic"
	Dealer   = "Car Dealer"
)

// ValidRoles is the set of allowed account types (matches the users table CHECK).
var ValidRoles = []string{Customer, Mechanic, Dealer}

// IsValidRole returns true if role is one of the allowed account types.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
