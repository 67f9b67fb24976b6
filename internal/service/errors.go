package service

import "errors"

var (
	// ErrNotFound covers both missing records and records owned by another
	// user. Handlers map it to 404 so existence of other users' data is
	// never revealed.
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDifficulty  = errors.New("difficulty must be between 0 and 5")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrNotAnImage         = errors.New("uploaded file is not a valid image")
)
