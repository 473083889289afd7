/*
Package randx generates cryptographically secure identifiers.

It produces Base62 guest IDs and nicknames, UUID message IDs, and validates
the room-name alphabet used in websocket paths.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for generated identifiers.
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// GuestIDPrefix marks identities issued without a login.
	GuestIDPrefix = "guest_"

	// GuestIDRawLength is the length of the random part of a guest ID.
	GuestIDRawLength = 8

	// MaxRoomNameLength bounds room names taken from the request path.
	MaxRoomNameLength = 32
)

var base62Len = big.NewInt(int64(len(Base62Chars)))

// base62String returns n random characters from Base62Chars.
func base62String(n int) (string, error) {
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, base62Len)
		if err != nil {
			return "", fmt.Errorf("failed to generate random identifier: %w", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}
	return string(result), nil
}

// GuestID generates a new guest identity of the form "guest_XXXXXXXX".
func GuestID() (string, error) {
	raw, err := base62String(GuestIDRawLength)
	if err != nil {
		return "", err
	}
	return GuestIDPrefix + raw, nil
}

// Nickname generates a random display name with a "User_" prefix.
func Nickname() (string, error) {
	raw, err := base62String(6)
	if err != nil {
		return "", err
	}
	return "User_" + raw, nil
}

// MessageID returns a UUID v4 string used as a wire message identifier.
func MessageID() string {
	return uuid.New().String()
}

// IsValidRoomName reports whether name is non-empty, within the length bound,
// and made only of Base62 characters, '-' and '_'.
func IsValidRoomName(name string) bool {
	if name == "" || len(name) > MaxRoomNameLength {
		return false
	}

	for _, char := range name {
		if char == '-' || char == '_' {
			continue
		}
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
