// Package password implements the stored password verifier: a salted
// PBKDF2-SHA256 hash with constant-time comparison of the derived key.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 600_000
	saltLen    = 16
	keyLen     = 32
)

// Hash derives a verifier for the secret with a fresh random salt,
// encoded as "pbkdf2:sha256:<iterations>$<salt>$<hex key>".
func Hash(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	key := pbkdf2.Key([]byte(secret), []byte(encodedSalt), iterations, keyLen, sha256.New)

	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, encodedSalt, hex.EncodeToString(key)), nil
}

// Compare reports whether the supplied secret matches the stored verifier.
// The derived-key comparison is constant-time; a structurally invalid
// verifier never matches.
func Compare(storedVerifier, secret string) bool {
	method, salt, wantHex, ok := decode(storedVerifier)
	if !ok {
		return false
	}

	iter, err := strconv.Atoi(strings.TrimPrefix(method, "pbkdf2:sha256:"))
	if err != nil || iter <= 0 {
		return false
	}

	want, err := hex.DecodeString(wantHex)
	if err != nil {
		return false
	}

	got := pbkdf2.Key([]byte(secret), []byte(salt), iter, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decode(verifier string) (method, salt, keyHex string, ok bool) {
	parts := strings.SplitN(verifier, "$", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	if !strings.HasPrefix(parts[0], "pbkdf2:sha256:") {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
