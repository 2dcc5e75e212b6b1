package listings

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrForbidden       = errors.New("Only the owning dealer can delete this listing")

	ErrMissingCarFields   = errors.New("Car name and brand are required")
	ErrInvalidYear        = errors.New("Invalid year")
	ErrInvalidListingType = errors.New("Invalid listing type")
	ErrInvalidPrice       = errors.New("Price must be greater than zero")
)
