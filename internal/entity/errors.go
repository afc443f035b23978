package entity

import "errors"

// Domain errors
var (
	// Build errors
	ErrInvalidInput  = errors.New("invalid build input")
	ErrBuildNotFound = errors.New("build not found")

	// Catalog errors
	ErrComponentNotFound = errors.New("component not found")

	// Chat errors
	ErrUserNotFound            = errors.New("user not found")
	ErrChatroomNotFound        = errors.New("chatroom not found")
	ErrMessageNotFound         = errors.New("message not found")
	ErrPersonalisationNotFound = errors.New("personalisation not found")
	ErrEmptyMessage            = errors.New("message content is empty")

	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")
)
