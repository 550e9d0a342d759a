// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates malformed input or a business-rule violation.
var ErrValidation = errors.New("validation failed")

// ErrConflict indicates a uniqueness conflict (e.g. duplicate tenant slug).
var ErrConflict = errors.New("conflict: resource already exists")
