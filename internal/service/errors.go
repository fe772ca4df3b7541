package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	ErrProjectNotFound    = errors.New("project not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrComparisonNotFound = errors.New("comparison not found")
	ErrForbidden          = errors.New("access denied")
	ErrNoBids             = errors.New("project has no bids to compare")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrNoText             = errors.New("no text could be extracted from the file")
)
