package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omchoksi/talentscout/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := testJWTService()

	token, err := svc.GenerateToken("recruiter@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "recruiter@example.com", claims.Subject)
	assert.Equal(t, "recruiter", claims.Role)
	assert.Equal(t, "recruiter@example.com", claims.GetSubject())
}

func TestJWT_EmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	assert.Error(t, err)
}

func TestJWT_MalformedToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken("recruiter@example.com")
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	svc := testJWTService()

	now := time.Now()
	claims := &Claims{
		Role: "recruiter",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "recruiter@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{claims})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWT_RejectsUnexpectedSigningMethod(t *testing.T) {
	// alg=none style tokens must not validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &jwtClaims{&Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "recruiter@example.com"},
	}})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}
