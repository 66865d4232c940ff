// Package auth gates mutating endpoints behind HTTP digest authentication
// for a single admin credential pair.
package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const realm = "administrator"

var (
	// ErrInvalidFormat is returned when the Authorization header is not a
	// digest challenge response at all.
	ErrInvalidFormat = errors.New(`expected digest format: 'Digest username="?", realm="?", nonce="?", opaque="?", uri="?", response="?"'`)

	// ErrIncorrectResponse is returned when the response field does not match
	// the expected hash for the configured credentials.
	ErrIncorrectResponse = errors.New("the 'response' field is incorrect or expired")
)

// MissingFieldError reports a required digest field absent from the header.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("digest does not contain required field: %q", e.Field)
}

// Authorizer verifies digest responses against the admin credentials.
type Authorizer struct {
	username string
	password string
}

// NewAuthorizer constructs an authorizer for the given admin credentials.
func NewAuthorizer(username, password string) *Authorizer {
	return &Authorizer{username: username, password: password}
}

// WWWAuthenticate builds the challenge header value sent with a 401. The
// nonce and opaque values are fresh per challenge.
func (a *Authorizer) WWWAuthenticate() string {
	return fmt.Sprintf("Digest realm=%q, nonce=%q, opaque=%q",
		realm, hashedUniqueID(), hashedUniqueID())
}

// Verify checks a raw Authorization header value against the request method
// and URI. It returns nil when the digest response matches.
func (a *Authorizer) Verify(rawDigest, method, uri string) error {
	clean := strings.TrimSpace(rawDigest)
	const prefix = "Digest "
	if !strings.HasPrefix(clean, prefix) {
		return ErrInvalidFormat
	}

	fields := parseFields(strings.TrimPrefix(clean, prefix))

	nonce, ok := fields["nonce"]
	if !ok {
		return MissingFieldError{Field: "nonce"}
	}
	response, ok := fields["response"]
	if !ok {
		return MissingFieldError{Field: "response"}
	}

	a1 := md5Hex(a.username + ":" + realm + ":" + a.password)
	a2 := md5Hex(method + ":" + uri)
	expected := md5Hex(a1 + ":" + nonce + ":" + a2)

	if subtle.ConstantTimeCompare([]byte(expected), []byte(response)) != 1 {
		return ErrIncorrectResponse
	}
	return nil
}

func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, field := range strings.Split(s, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(field), "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return fields
}

func hashedUniqueID() string {
	return md5Hex(uuid.NewString())
}

// The digest scheme is defined over MD5, so MD5 it is. These hashes gate an
// already plaintext-configured credential; they are not password storage.
func md5Hex(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
