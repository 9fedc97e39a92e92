package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
)

var cheapParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPasswordWithParams("correct horse", cheapParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := VerifyPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong horse")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPasswordWithParams("secret", cheapParams)
	require.NoError(t, err)
	b, err := HashPasswordWithParams("secret", cheapParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Rejects(t *testing.T) {
	_, err := HashPasswordWithParams("", cheapParams)
	assert.Error(t, err)

	_, err = HashPasswordWithParams(strings.Repeat("x", maxPasswordLength+1), cheapParams)
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		ok, err := VerifyPassword(hash, "secret")
		assert.NoError(t, err, hash)
		assert.False(t, ok, hash)
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "auth.key")

	key, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestLoadOrGenerateKey_Invalid(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.key")
	require.NoError(t, os.WriteFile(short, []byte("abcd"), 0o600))
	_, err := LoadOrGenerateKey(short)
	assert.Error(t, err)

	notHex := filepath.Join(dir, "nothex.key")
	require.NoError(t, os.WriteFile(notHex, []byte(strings.Repeat("z", 64)), 0o600))
	_, err = LoadOrGenerateKey(notHex)
	assert.Error(t, err)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	s, err := NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestTokenService(t)
	user := &domain.User{ID: "user-1", Username: "john_doe"}

	tok, err := s.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok.Value, "v4.local."))
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := s.VerifyAccessToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "john_doe", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, strings.HasPrefix(claims.TokenID, "tok-"))
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	s := newTestTokenService(t)
	tok, err := s.GenerateAccessToken(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.VerifyAccessToken(tok.Value)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	s := newTestTokenService(t)
	tok, err := s.GenerateAccessToken(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	other, err := NewTokenService(make([]byte, KeySize), time.Hour)
	require.NoError(t, err)
	_, err = other.VerifyAccessToken(tok.Value)
	assert.Error(t, err)

	_, err = s.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenService_Rejects(t *testing.T) {
	_, err := NewTokenService(make([]byte, 16), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(make([]byte, KeySize), 0)
	assert.Error(t, err)
}
