package requests

import "errors"

var (
	ErrListingNotFound   = errors.New("Listing not found")
	ErrRequestNotFound   = errors.New("Request not found")
	ErrDuplicatePending  = errors.New("You already have a pending request for this car")
	ErrKindMismatch      = errors.New("Request type does not match the listing type")
	ErrForbidden         = errors.New("Only the listing's dealer can respond to this request")
	ErrInvalidTransition = errors.New("Request has already been responded to")
	ErrSelfRequest       = errors.New("Dealers cannot request their own listings")
)
