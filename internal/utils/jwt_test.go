package utils

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeToken(t *testing.T, claims map[string]interface{}) string {
	payload, err := json.Marshal(claims)
	assert.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".signature"
}

func TestParseJWTClaims(t *testing.T) {
	token := makeToken(t, map[string]interface{}{"sub": "user-123", "role": "authenticated"})

	claims := ParseJWTClaims(token)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "authenticated", claims["role"])
}

func TestParseJWTClaimsMalformed(t *testing.T) {
	assert.Empty(t, ParseJWTClaims("not-a-jwt"))
	assert.Empty(t, ParseJWTClaims("a.b"))
	assert.Empty(t, ParseJWTClaims("a.!!!.c"))
}

func TestSubjectFromToken(t *testing.T) {
	token := makeToken(t, map[string]interface{}{"sub": "user-123"})
	assert.Equal(t, "user-123", SubjectFromToken(token))

	noSub := makeToken(t, map[string]interface{}{"role": "authenticated"})
	assert.Equal(t, "", SubjectFromToken(noSub))
}
