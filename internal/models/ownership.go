package models

import "github.com/google/uuid"

// OwnershipStatus is the outcome of checking a caller against a record before mutating it.
type OwnershipStatus int

const (
	OwnershipGranted OwnershipStatus = iota
	OwnershipNotFound
	OwnershipForbidden
)

func (s OwnershipStatus) String() string {
	switch s {
	case OwnershipGranted:
		return "granted"
	case OwnershipNotFound:
		return "not_found"
	case OwnershipForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// CheckOwnership decides whether userID may mutate t. A nil transaction is not found.
func CheckOwnership(t *Transaction, userID uuid.UUID) OwnershipStatus {
	if t == nil {
		return OwnershipNotFound
	}
	if t.UserID != userID {
		return OwnershipForbidden
	}
	return OwnershipGranted
}
