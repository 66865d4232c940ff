package auth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func digestFor(t *testing.T, username, password, nonce, method, uri string) string {
	t.Helper()
	sum := func(s string) string {
		h := md5.Sum([]byte(s))
		return hex.EncodeToString(h[:])
	}
	a1 := sum(username + ":administrator:" + password)
	a2 := sum(method + ":" + uri)
	response := sum(a1 + ":" + nonce + ":" + a2)
	return fmt.Sprintf(`Digest username=%q, realm="administrator", nonce=%q, uri=%q, response=%q`,
		username, nonce, uri, response)
}

func TestVerifyAcceptsCorrectResponse(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")
	header := digestFor(t, "admin", "s3cret", "abc123", http.MethodPost, "/api/v3/questions")

	assert.NoError(t, a.Verify(header, http.MethodPost, "/api/v3/questions"))
}

func TestVerifyToleratesSurroundingWhitespace(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")
	header := "  " + digestFor(t, "admin", "s3cret", "abc123", http.MethodPost, "/api/v3/questions") + "  "

	assert.NoError(t, a.Verify(header, http.MethodPost, "/api/v3/questions"))
}

func TestVerifyRejectsNonDigestHeader(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")

	assert.ErrorIs(t, a.Verify("Bearer sometoken", http.MethodPost, "/api/v3/questions"), ErrInvalidFormat)
	assert.ErrorIs(t, a.Verify("", http.MethodPost, "/api/v3/questions"), ErrInvalidFormat)
}

func TestVerifyReportsMissingFields(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")

	err := a.Verify(`Digest username="admin", response="deadbeef"`, http.MethodPost, "/x")
	assert.Equal(t, MissingFieldError{Field: "nonce"}, err)

	err = a.Verify(`Digest username="admin", nonce="abc123"`, http.MethodPost, "/x")
	assert.Equal(t, MissingFieldError{Field: "response"}, err)
}

func TestVerifyRejectsWrongCredentials(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")
	header := digestFor(t, "admin", "wrong-password", "abc123", http.MethodPost, "/api/v3/questions")

	assert.ErrorIs(t, a.Verify(header, http.MethodPost, "/api/v3/questions"), ErrIncorrectResponse)
}

func TestVerifyBindsMethodAndURI(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")
	header := digestFor(t, "admin", "s3cret", "abc123", http.MethodPost, "/api/v3/questions")

	assert.ErrorIs(t, a.Verify(header, http.MethodPut, "/api/v3/questions"), ErrIncorrectResponse)
	assert.ErrorIs(t, a.Verify(header, http.MethodPost, "/api/v3/categories"), ErrIncorrectResponse)
}

func TestWWWAuthenticateShape(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")

	header := a.WWWAuthenticate()
	assert.Regexp(t, `^Digest realm="administrator", nonce="[0-9a-f]{32}", opaque="[0-9a-f]{32}"$`, header)
	assert.NotEqual(t, header, a.WWWAuthenticate(), "nonce must be fresh per challenge")
}

func TestRequireDigestMiddleware(t *testing.T) {
	a := NewAuthorizer("admin", "s3cret")
	logger := zerolog.New(io.Discard)

	var reached bool
	handler := RequireDigest(a, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	// no credentials at all
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v3/questions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Regexp(t, `^Digest realm="administrator"`, rec.Header().Get("WWW-Authenticate"))
	assert.False(t, reached)

	// bad response
	req := httptest.NewRequest(http.MethodPost, "/api/v3/questions", nil)
	req.Header.Set("Authorization", digestFor(t, "admin", "nope", "abc123", http.MethodPost, "/api/v3/questions"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// valid response
	req = httptest.NewRequest(http.MethodPost, "/api/v3/questions", nil)
	req.Header.Set("Authorization", digestFor(t, "admin", "s3cret", "abc123", http.MethodPost, "/api/v3/questions"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, reached)
}
