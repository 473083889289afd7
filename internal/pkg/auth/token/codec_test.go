package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit_test_secret"

func TestSignVerifyRoundTrip(t *testing.T) {
	claims := Claims{
		"sub":  "guest_abc12345",
		"name": "alice",
		"role": "guest",
	}

	tokenString, err := Sign(claims, testSecret, time.Minute)
	require.NoError(t, err)
	require.Len(t, strings.Split(tokenString, "."), 3)

	decoded, ok := Verify(tokenString, testSecret)
	require.True(t, ok)
	require.Equal(t, "guest_abc12345", decoded["sub"])
	require.Equal(t, "alice", decoded["name"])
	require.Equal(t, "guest", decoded["role"])
	require.Contains(t, decoded, "exp")
}

func TestSignOverwritesCallerExp(t *testing.T) {
	farFuture := time.Now().Add(24 * time.Hour).Unix()
	claims := Claims{
		"sub": "u1",
		"exp": farFuture,
	}

	tokenString, err := Sign(claims, testSecret, time.Minute)
	require.NoError(t, err)

	decoded, ok := Verify(tokenString, testSecret)
	require.True(t, ok)

	exp, isFloat := decoded["exp"].(float64)
	require.True(t, isFloat)
	require.Less(t, int64(exp), farFuture)
	require.InDelta(t, time.Now().Add(time.Minute).Unix(), int64(exp), 5)
}

func TestVerifyTamperedSegments(t *testing.T) {
	tokenString, err := Sign(Claims{"sub": "u1"}, testSecret, time.Minute)
	require.NoError(t, err)

	segments := strings.Split(tokenString, ".")
	require.Len(t, segments, 3)

	for _, segIdx := range []int{0, 1} {
		mutated := make([]string, 3)
		copy(mutated, segments)

		seg := []byte(mutated[segIdx])
		if seg[0] == 'A' {
			seg[0] = 'B'
		} else {
			seg[0] = 'A'
		}
		mutated[segIdx] = string(seg)

		_, ok := Verify(strings.Join(mutated, "."), testSecret)
		require.False(t, ok, "tampered segment %d must not verify", segIdx)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenString, err := Sign(Claims{"sub": "u1"}, testSecret, time.Minute)
	require.NoError(t, err)

	_, ok := Verify(tokenString, "a_different_secret")
	require.False(t, ok)
}

func TestVerifyExpired(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second, -time.Hour} {
		tokenString, err := Sign(Claims{"sub": "u1"}, testSecret, ttl)
		require.NoError(t, err)

		_, ok := Verify(tokenString, testSecret)
		require.False(t, ok, "ttl %v must produce an already-invalid token", ttl)
	}
}

func TestVerifyMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c",
		"..",
		"eyJhbGciOiJIUzI1NiJ9..",
	} {
		_, ok := Verify(input, testSecret)
		require.False(t, ok, "input %q must not verify", input)
	}
}

func TestVerifyRejectsForeignSigningMethod(t *testing.T) {
	// A token correctly signed with a different HMAC variant must still be
	// rejected: the codec pins HS256, not just the HMAC family.
	hs384 := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	tokenString, err := hs384.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, ok := Verify(tokenString, testSecret)
	require.False(t, ok)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := Verify(tokenString, testSecret)
	require.False(t, ok)
}

func TestVerifyNoExpClaimIsValid(t *testing.T) {
	// Tokens are only ever produced through Sign, which always stamps exp,
	// but Verify itself treats a missing exp as non-expiring.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	tokenString, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	decoded, ok := Verify(tokenString, testSecret)
	require.True(t, ok)
	require.Equal(t, "u1", decoded["sub"])
}

func TestSignNonSerializableClaim(t *testing.T) {
	_, err := Sign(Claims{"bad": make(chan int)}, testSecret, time.Minute)
	require.Error(t, err)
}
