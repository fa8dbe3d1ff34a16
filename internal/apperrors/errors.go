package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates that a monetary amount is not a positive value
// with at most two decimal places.
var ErrInvalidAmount = errors.New("amount must be a positive value with at most two decimal places")

// ErrInsufficientFunds indicates that a debit would drive the account balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccountTransfer indicates that a transfer's source and destination
// resolve to the same account.
var ErrSameAccountTransfer = errors.New("transfer destination must differ from source")

// ErrStoreUnavailable indicates a failure in the underlying persistence layer.
// Operations failing with this error have been fully rolled back and may be retried.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
