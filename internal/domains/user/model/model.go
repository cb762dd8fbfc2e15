package model

import (
	"careops/shared/model"
	"strings"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
)

type User struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Role      string `db:"role"`
	model.Metadata
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultFirstName derives a display name from the local part of an email.
func DefaultFirstName(email string) string {
	local, _, _ := strings.Cut(email, "@")

	return local
}
