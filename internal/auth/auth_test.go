package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHash_Schemes(t *testing.T) {
	for _, scheme := range []string{SchemePBKDF2, SchemeBcrypt, SchemeCrypt} {
		t.Run(scheme, func(t *testing.T) {
			stored, err := Hash(scheme, "Zara", "hunter2")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(stored, scheme+"$"))
			assert.Equal(t, scheme, SchemeOf(stored))
			assert.True(t, Verify("Zara", "hunter2", stored))
			assert.False(t, Verify("Zara", "hunter3", stored))
			assert.False(t, Verify("Zara", "", stored))
		})
	}
}

func TestHash_PBKDF2SaltIsName(t *testing.T) {
	a, err := Hash(SchemePBKDF2, "Zara", "secret")
	require.NoError(t, err)
	b, err := Hash(SchemePBKDF2, "zara", "secret")
	require.NoError(t, err)
	c, err := Hash(SchemePBKDF2, "Bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, a, b, "salt is case-insensitive")
	assert.NotEqual(t, a, c)
	assert.Len(t, strings.TrimPrefix(a, "pbkdf2$"), 32)
}

func TestHash_UnknownScheme(t *testing.T) {
	_, err := Hash("md5", "Zara", "secret")
	assert.ErrorIs(t, err, ErrUnknownScheme)
	assert.False(t, ValidScheme("md5"))
	assert.False(t, Verify("Zara", "secret", "md5$abc"))
	assert.False(t, Verify("Zara", "secret", "nodollar"))
	assert.Equal(t, "", SchemeOf("nodollar"))
}

func TestCryptSalt(t *testing.T) {
	assert.Equal(t, "Za", cryptSalt("Zara"))
	assert.Equal(t, "..", cryptSalt(""))
	assert.Equal(t, "B.", cryptSalt("B"))
}

func TestPropertyPBKDF2Verifies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z]{2,20}`).Draw(rt, "name")
		pw := rapid.StringMatching(`[ -~]{1,10}`).Draw(rt, "pw")
		stored, err := Hash(SchemePBKDF2, name, pw)
		if err != nil {
			rt.Fatalf("hash: %v", err)
		}
		if !Verify(strings.ToUpper(name), pw, stored) {
			rt.Fatalf("verify failed for %q/%q", name, pw)
		}
	})
}

func TestTokenIssuer(t *testing.T) {
	ti := NewTokenIssuer("0123456789abcdef0123", time.Hour)
	tok, err := ti.Issue("Zara", 34)
	require.NoError(t, err)

	claims, err := ti.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "Zara", claims.Name)
	assert.Equal(t, 34, claims.Level)

	other := NewTokenIssuer("another-secret-entirely", time.Hour)
	_, err = other.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ti.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	ti := NewTokenIssuer("0123456789abcdef0123", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	ti.now = func() time.Time { return issued }
	tok, err := ti.Issue("Zara", 34)
	require.NoError(t, err)

	ti.now = time.Now
	_, err = ti.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
