package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
	keyLength   = 32
)

// Hash derives an argon2id key from the password under a fresh random
// salt and encodes both for storage as "salt$key" (base64).
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, keyLength)

	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// Verify re-derives the key under the stored salt and compares in
// constant time.
func Verify(password, encoded string) bool {
	parts := strings.SplitN(encoded, "$", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	stored, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, keyLength)

	return subtle.ConstantTimeCompare(key, stored) == 1
}
