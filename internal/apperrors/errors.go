package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks permission for the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the refresh token passed its absolute expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrSessionInactive indicates the session exceeded the inactivity window.
var ErrSessionInactive = errors.New("session expired due to inactivity")

// ErrInvalidTransition indicates a moderation action from a wrong source state.
var ErrInvalidTransition = errors.New("invalid status transition")
