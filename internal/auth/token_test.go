package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef-test")

func TestIssueThenParse(t *testing.T) {
	tokens := NewTokens(secret, time.Hour)
	tok, err := tokens.Issue("user-42")
	require.NoError(t, err)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
	assert.Equal(t, time.Hour, tokens.TTL())
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := NewTokens(secret, time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	tok, err := tokens.Issue("user-42")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	tok, err := NewTokens([]byte("some-other-secret-value"), time.Hour).Issue("user-42")
	require.NoError(t, err)

	_, err = NewTokens(secret, time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokens(secret, time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRequiresExpiryAndSubject(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-42"}).SignedString(secret)
	require.NoError(t, err)
	_, err = NewTokens(secret, time.Hour).Parse(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = NewTokens(secret, time.Hour).Parse(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokens(secret, time.Hour).Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
