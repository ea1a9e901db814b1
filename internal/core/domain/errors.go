package domain

import "errors"

// Sentinel errors shared by every layer. Wrap them with fmt.Errorf("%w: ...")
// to attach detail; the HTTP error handler maps them with errors.Is.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("request was modified concurrently")

	ErrRequestNotFound = errors.New("donation request not found")
	ErrNotPending      = errors.New("pending donation request not found or already confirmed")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrBlogNotFound    = errors.New("blog not found")
)
