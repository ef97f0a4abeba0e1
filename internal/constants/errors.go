package constants

import "errors"

// CLI errors.
var (
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrContentIDRequired   = errors.New("content ID is required")
	ErrInvalidLimit        = errors.New("limit must not be negative")
)
