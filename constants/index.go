package constants

const (
	ERROR_INPUT                = "Invalid input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Could not read request data"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	NOT_FOUND                  = "Not found"
	LOGIN_REQUIRED             = "Login required"
	INVALID_CREDENTIALS        = "Invalid username or password"
	EVENT_NOT_BOOKABLE         = "This event does not accept reservations anymore"
	RESERVATION_REJECTED       = "Reservation rejected"
	SLUG_CONFLICT              = "Slug already taken, please retry"
)

const (
	DRIVER_POSTGRES = "postgres"
	DRIVER_MEMORY   = "memory"
)
