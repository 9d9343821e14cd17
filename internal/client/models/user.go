// Package models defines the client-side shapes exchanged with the smartmeet
// backend.
package models

import (
	"encoding/json"
	"errors"
	"time"
)

// User is the account record returned by the identity endpoints.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Email    string `json:"email" yaml:"email"`
	FullName string `json:"full_name" yaml:"full_name"`
	IsActive bool   `json:"is_active" yaml:"is_active"`

	// CreatedAt is kept as sent by the server. The backend emits ISO-8601
	// timestamps with or without a zone, and sometimes only a date.
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// UnmarshalJSON accepts the id under either "id" or "_id"; the backend
// serializes its document key by alias on some routes.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		DocumentID string `json:"_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.DocumentID
	}
	return nil
}

// Credentials are the login form fields. Identifier is the account email.
type Credentials struct {
	Identifier string
	Secret     string
}

// Registration is the JSON body of the register endpoint.
type Registration struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ErrBadTimestamp is returned by ParseTimestamp for unknown formats.
var ErrBadTimestamp = errors.New("unrecognized timestamp")

// ParseTimestamp parses the timestamp formats the backend produces.
// Zone-less values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}
