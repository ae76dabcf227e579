package repo

import (
	"errors"
	"net"
	"strings"

	"github.com/lib/pq"
)

// Category buckets every failure surfaced to the caller. There is exactly one
// category per failure; anything unmapped passes its raw message through.
type Category string

const (
	CategoryInvalidCredentials  Category = "invalid_credentials"
	CategoryMissingSchema       Category = "missing_schema"
	CategoryAuthorizationPolicy Category = "authorization_policy_violation"
	CategoryNetworkUnreachable  Category = "network_unreachable"
	CategoryValidationFailed    Category = "validation_failed"
	CategoryUnclassified        Category = "unclassified"
)

// Error is a classified, displayable failure.
type Error struct {
	Category Category
	Message  string
	cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// NewError builds a classified error without an underlying cause.
func NewError(cat Category, msg string) *Error {
	return &Error{Category: cat, Message: msg}
}

// Validation flags a client-side check failure; no remote call was made.
func Validation(msg string) *Error {
	return NewError(CategoryValidationFailed, msg)
}

// Postgres error codes observed at the storage boundary
const (
	pqUndefinedTable        = "42P01"
	pqInsufficientPrivilege = "42501"
)

// Classify maps a raw storage failure onto exactly one category. The fallback
// message is used when the raw error carries no text.
func Classify(err error, fallback string) *Error {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUndefinedTable:
			return &Error{
				Category: CategoryMissingSchema,
				Message:  "missing table or relation: " + pqErr.Message + ". Re-run the migrations.",
				cause:    err,
			}
		case pqInsufficientPrivilege:
			return &Error{
				Category: CategoryAuthorizationPolicy,
				Message:  "rejected by row-level security policy",
				cause:    err,
			}
		}
		if strings.Contains(pqErr.Message, "row-level security") {
			return &Error{
				Category: CategoryAuthorizationPolicy,
				Message:  "rejected by row-level security policy",
				cause:    err,
			}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || strings.Contains(err.Error(), "connection refused") {
		return &Error{
			Category: CategoryNetworkUnreachable,
			Message:  "cannot reach the database. Check the connection settings.",
			cause:    err,
		}
	}

	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return &Error{Category: CategoryUnclassified, Message: msg, cause: err}
}
