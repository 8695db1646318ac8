package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrPaymentNotFound = errors.New("payment entry not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidJobType  = errors.New("invalid job type")
)
