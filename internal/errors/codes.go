package errors

// Error codes returned in the "error" field of every error response.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map on the code, not the message.

const (
	// ==================== Profile identity (AUTH_) ====================
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // profile token expired
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // malformed or forged token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // body does not bind
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non numeric id in the path
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // coordinates, radius, xp
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Restaurants (RESTAURANT_) ====================
	RestaurantNotFound = "RESTAURANT_NOT_FOUND"
	RestaurantInvalid  = "RESTAURANT_INVALID"

	// ==================== Interactions (INTERACTION_) ====================
	InteractionInvalidAction       = "INTERACTION_INVALID_ACTION"
	InteractionInvalidRestaurantID = "INTERACTION_INVALID_RESTAURANT_ID"

	// ==================== Profiles (PROFILE_) ====================
	ProfileNotFound  = "PROFILE_NOT_FOUND"
	ProfileInvalid   = "PROFILE_INVALID"
	ProfileInvalidXP = "PROFILE_INVALID_XP"

	// ==================== Rate limiting (RATE_) ====================
	RateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
