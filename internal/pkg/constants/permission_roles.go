package constants

// PermissionRoles maps each permission to the account types allowed to
// perform it. Every role-gated entry point consults this table exactly once
// via the AuthorizePermission middleware.
var PermissionRoles = map[string][]string{
	CreateListing:      {Dealer},
	DeleteListing:      {Dealer},
	ViewMyListings:     {Dealer},
	RequestListing:     {Customer},
	RespondRequest:     {Dealer},
	ViewDealerRequests: {Dealer},
	ViewListingEvents:  {Dealer},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
