package constants

const (
	CreateListing      = "create_listing"
	DeleteListing      = "delete_listing"
	ViewMyListings     = "view_my_listings"
	RequestListing     = "request_listing"
	RespondRequest     = "respond_request"
	ViewDealerRequests = "view_dealer_requests"
	ViewListingEvents  = "view_listing_events"
)
