package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test-secret")

	token, err := h.generateJWT("anon-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	anonID, err := h.validateAndGetAnonID(token)
	assert.NoError(t, err)
	assert.Equal(t, "anon-123", anonID)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	issuer := NewHandler(nil, nil, nil, "secret-one")
	verifier := NewHandler(nil, nil, nil, "secret-two")

	token, err := issuer.generateJWT("anon-123")
	assert.NoError(t, err)

	_, err = verifier.validateAndGetAnonID(token)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test-secret")
	_, err := h.validateAndGetAnonID("not-a-token")
	assert.Error(t, err)
}
