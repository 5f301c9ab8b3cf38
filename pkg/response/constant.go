package response

// Envelope constants shared by every JSON response.
const (
	MessageSuccess = "Success"

	InternalServerErrorCode = 500
	DefaultErrorMessage     = "Something went wrong"
)
