package apperrors

import "fmt"

// ErrNotFound represents an error when a requested catalog resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowNotFoundError creates a specific error for when the catalog has no show with the given ID.
func NewShowNotFoundError(showID int) *ErrNotFound {
	return NewNotFoundError("show", showID)
}

// ErrUnexpectedStatus is returned when the catalog answers with a non-2xx status other than 404.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("catalog returned status %d for %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// ErrMalformedResponse is returned when a catalog body cannot be decoded or lacks required fields.
type ErrMalformedResponse struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ErrMalformedResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed catalog response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed catalog response from %s: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying decode error, if any.
func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedResponse) Is(target error) bool {
	_, ok := target.(*ErrMalformedResponse)
	return ok
}
