package models

import "errors"

// Domain error taxonomy. Repositories and services return these (possibly
// wrapped); handlers map them to HTTP statuses with errors.Is.
var (
	ErrTrainNotFound        = errors.New("train not found")
	ErrClassNotFound        = errors.New("class not found")
	ErrSeatsUnavailable     = errors.New("no seats available")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrAlreadyCancelled     = errors.New("ticket already cancelled")
	ErrTrainHasTickets      = errors.New("train has active tickets")
	ErrDuplicateTrainNumber = errors.New("train number already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrValidation           = errors.New("validation failed")
)
