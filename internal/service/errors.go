package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP codes
// with errors.Is.
var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidResult    = errors.New("result must be a finite number")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
