package httpx

// Cookie names shared by handlers and middleware.
const (
	// SessionCookieName carries the opaque server-side session id.
	SessionCookieName = "session_id"

	// FlashCookieName carries a one-shot notice shown after a redirect.
	FlashCookieName = "flash"
)

// Flash messages reused across handlers.
const (
	FlashSignInRequired   = "Please sign in to continue."
	FlashLoginFirst       = "Please log in :)"
	FlashCategoryAdmins   = "Warning: Only admin(s) can add, remove or modify a category."
	FlashNotItemOwner     = "Error: You cannot edit an item that you did not add !"
	FlashNotItemDeleter   = "Error: You cannot delete an item that you did not add !"
	FlashLoggedOut        = "You have been logged out."
	FlashAlreadySignedIn  = "You are already signed in."
)

// Response bodies of the provider connect/disconnect endpoints. The wording
// is part of the public contract.
const (
	msgInvalidState       = "Invalid state parameter"
	msgExchangeFailed     = "Failed to upgrade the authorization code."
	msgTokenUserMismatch  = "Token's user ID doesn't match given user ID."
	msgClientMismatch     = "Token's client ID doesn't match app's."
	msgAlreadyConnected   = "Current user is already connected."
	msgNotConnected       = "Current user not connected."
	msgDisconnected       = "Successfully disconnected."
	msgRevokeFailed       = "Failed to revoke token for given user."
)
