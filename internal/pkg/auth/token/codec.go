/*
Package token implements signing and verification of compact HS256 tokens.

The codec is pure: the secret is passed explicitly on every call and the only
ambient input is the wall clock. Verification collapses every failure mode
(malformed, forged, expired) into a single invalid outcome so callers cannot
leak the reason a token was rejected.
*/
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is the payload carried by a token: claim names mapped to
// JSON-serializable values.
type Claims = map[string]any

// Sign creates an HS256 token over the given claims. The expiration claim is
// always set to now + ttl; a caller-supplied "exp" is overwritten, never
// preserved. A claim value that cannot be serialized to JSON fails the call.
func Sign(claims Claims, secret string, ttl time.Duration) (string, error) {
	merged := jwt.MapClaims{}
	for name, value := range claims {
		merged[name] = value
	}
	merged["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, merged)

	return token.SignedString([]byte(secret))
}

// Verify checks tokenString against secret and returns the decoded claims.
// The signing method is pinned to HS256 before the key is released, so a
// token claiming any other algorithm (including "none") never reaches
// signature comparison. The HMAC check itself is constant-time.
//
// ok is false for malformed structure, a bad signature, or an expiration at
// or before the current time. The causes are never distinguished.
func Verify(tokenString string, secret string) (Claims, bool) {
	claims := jwt.MapClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil || !parsed.Valid {
		return nil, false
	}

	if !expStillValid(claims) {
		return nil, false
	}

	return claims, true
}

// expStillValid requires a present "exp" claim to be strictly in the future.
// A token with no expiration claim passes; the numeric claim arrives as
// float64 from the JSON decoder or as an integer type when claims were built
// in-process.
func expStillValid(claims jwt.MapClaims) bool {
	raw, ok := claims["exp"]
	if !ok {
		return true
	}

	var exp int64
	switch v := raw.(type) {
	case float64:
		exp = int64(v)
	case int64:
		exp = v
	case int:
		exp = int64(v)
	default:
		return false
	}

	return exp > time.Now().Unix()
}
