package domain

import "time"

type VerificationKind string

const VerificationEmail VerificationKind = "email"

// VerificationCode is a one-time code mailed to a user.
type VerificationCode struct {
	ID        string
	UserID    string
	Kind      VerificationKind
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
