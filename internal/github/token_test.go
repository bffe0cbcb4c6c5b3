package github

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean token", "ghp_abc123", "ghp_abc123"},
		{"leading and trailing spaces", "  ghp_abc123  ", "ghp_abc123"},
		{"embedded newline", "ghp_abc\n123", "ghp_abc123"},
		{"carriage return and tab", "ghp_abc\r\t123", "ghp_abc123"},
		{"control characters", "ghp_abc\x00123", "ghp_abc123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeToken(tt.input))
		})
	}
}

func TestValidateToken(t *testing.T) {
	assert.NoError(t, ValidateToken("ghp_abc123"))
	assert.Error(t, ValidateToken(""))
	assert.Error(t, ValidateToken("ghp_abc 123"))
	assert.Error(t, ValidateToken("ghp_abc\n123"))
}

func TestFormatAuthHeader(t *testing.T) {
	assert.Equal(t, "Bearer ghp_abc", FormatAuthHeader("ghp_abc"))
	assert.Equal(t, "Bearer ghp_abc", FormatAuthHeader("Bearer ghp_abc"))
	assert.Equal(t, "Bearer ghp_abc", FormatAuthHeader("  ghp_abc\n"))
}

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "token")
	store := NewTokenStore(path)

	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save("  ghp_secret\n"))

	exists, err = store.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", tok, "token sanitized on save")

	require.NoError(t, store.Delete())
	exists, err = store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTokenStore_SaveRejectsEmpty(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	assert.Error(t, store.Save("   "))
}

func TestTokenStore_DeleteMissingIsNoop(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	assert.NoError(t, store.Delete())
}
