package rest

// ResponseError is the flat error body handlers return on failure.
type ResponseError struct {
	Message string `json:"message"`
}
