package model

import (
	"context"
	"time"
)

// MemberStore defines persistence operations for members.
//
// Create must rely on the database unique constraint for email uniqueness
// and return ErrDuplicateEmail when it is violated; any pre-check done by
// callers is an optimization, not the correctness mechanism.
type MemberStore interface {
	Create(ctx context.Context, member Member) (Member, error)
	GetByEmail(ctx context.Context, email string) (Member, error)
	GetByID(ctx context.Context, id int64) (Member, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (Member, error)
	List(ctx context.Context, scope AccessScope) ([]Member, error)
}

// Member represents a stored member with authentication material.
// PasswordHash never leaves the storage and service layers.
type Member struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessScope restricts a query to rows visible to the caller.
// A nil MemberID means no ownership restriction.
type AccessScope struct {
	MemberID *int64
}
