// Package auth hashes player passwords and issues admin tokens.
//
// Stored hashes carry their scheme as a prefix ("pbkdf2$...",
// "bcrypt$...", "crypt$...") so a server can change its default scheme
// without invalidating existing players.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	descrypt "github.com/digitive/crypt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Password schemes.
const (
	SchemePBKDF2 = "pbkdf2"
	SchemeBcrypt = "bcrypt"
	SchemeCrypt  = "crypt"
)

// pbkdf2 parameters. The salt is the lowercased player name.
const (
	pbkdf2Iterations = 4
	pbkdf2KeyLen     = 16
)

// ErrUnknownScheme is returned for a scheme this package cannot produce.
var ErrUnknownScheme = errors.New("unknown password scheme")

// ValidScheme reports whether scheme names a supported hash.
func ValidScheme(scheme string) bool {
	switch scheme {
	case SchemePBKDF2, SchemeBcrypt, SchemeCrypt:
		return true
	}
	return false
}

// Hash derives the stored form of password for the player name.
//
// Precondition: password must be non-empty.
// Postcondition: Returns "<scheme>$<digest>" or ErrUnknownScheme.
func Hash(scheme, name, password string) (string, error) {
	switch scheme {
	case SchemePBKDF2:
		return SchemePBKDF2 + "$" + hex.EncodeToString(derive(name, password)), nil
	case SchemeBcrypt:
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("hashing password: %w", err)
		}
		return SchemeBcrypt + "$" + string(h), nil
	case SchemeCrypt:
		h, err := descrypt.Crypt(password, cryptSalt(name))
		if err != nil {
			return "", fmt.Errorf("hashing password: %w", err)
		}
		return SchemeCrypt + "$" + h, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// Verify reports whether password matches the stored hash for name.
func Verify(name, password, stored string) bool {
	scheme, digest, ok := strings.Cut(stored, "$")
	if !ok || password == "" {
		return false
	}
	switch scheme {
	case SchemePBKDF2:
		want, err := hex.DecodeString(digest)
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(want, derive(name, password)) == 1
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	case SchemeCrypt:
		if len(digest) < 2 {
			return false
		}
		got, err := descrypt.Crypt(password, digest[:2])
		return err == nil && subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
	}
	return false
}

// SchemeOf returns the scheme prefix of a stored hash, or "".
func SchemeOf(stored string) string {
	scheme, _, ok := strings.Cut(stored, "$")
	if !ok {
		return ""
	}
	return scheme
}

func derive(name, password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(strings.ToLower(name)), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
}

// cryptSalt uses the first two letters of the name, as crypt(3) only
// takes a two-character salt from [./0-9A-Za-z].
func cryptSalt(name string) string {
	salt := []byte("..")
	for i := 0; i < 2 && i < len(name); i++ {
		c := name[i]
		if c == '.' || c == '/' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			salt[i] = c
		}
	}
	return string(salt)
}
