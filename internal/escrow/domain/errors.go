package domain

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrUnauthorized       = errors.New("account is not an authorized creator")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDeadlinePassed     = errors.New("project deadline has passed")
	ErrDeadlineNotReached = errors.New("project deadline not reached")
	ErrAlreadyFinalized   = errors.New("project already finalized")
	ErrNotFailed          = errors.New("project has not failed")
	ErrNoFunds            = errors.New("no funds recorded for contributor")
	ErrTransferFailed     = errors.New("transfer failed")
)
