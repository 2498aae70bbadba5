package models

// APIResponse is the generic envelope for botserver API replies.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK builds a successful response carrying data.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: &data}
}

// OKWithMessage builds a successful response with an informational message.
func OKWithMessage[T any](data T, message string) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: &data, Message: message}
}

// Fail builds an error response.
func Fail[T any](message string) APIResponse[T] {
	return APIResponse[T]{Success: false, Error: message}
}

// FailWithCode builds an error response with a machine-readable code.
func FailWithCode[T any](message, code string) APIResponse[T] {
	return APIResponse[T]{Success: false, Error: message, Code: code}
}

// IsError reports whether the response carries an error.
func (r APIResponse[T]) IsError() bool {
	return !r.Success
}

// MapResponse converts the data of a successful response with f, keeping
// the envelope fields intact.
func MapResponse[T, U any](r APIResponse[T], f func(T) U) APIResponse[U] {
	out := APIResponse[U]{
		Success: r.Success,
		Error:   r.Error,
		Message: r.Message,
		Code:    r.Code,
	}
	if r.Data != nil {
		mapped := f(*r.Data)
		out.Data = &mapped
	}
	return out
}
