package github

import (
	"fmt"
	"os"
	"path/filepath"
)

// TokenStore handles personal access token storage and retrieval with
// secure file permissions. Tokens are bearer credentials: anyone with the
// token can act as the authenticated user, so the file must not be
// readable by other users on the system.
type TokenStore struct {
	tokenPath string
}

// NewTokenStore creates a token store at the given path.
func NewTokenStore(tokenPath string) *TokenStore {
	return &TokenStore{tokenPath: tokenPath}
}

// DefaultTokenPath returns the standard token location under the user's
// config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "issuedash", "token"), nil
}

// Save writes the token to disk. The directory is created with 0700 and
// the file with 0600 so only the owner can read it.
func (s *TokenStore) Save(token string) error {
	sanitized := SanitizeToken(token)
	if err := ValidateToken(sanitized); err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	dir := filepath.Dir(s.tokenPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.tokenPath, []byte(sanitized), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load reads the stored token.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return SanitizeToken(string(data)), nil
}

// Exists reports whether a token file is present. A missing file is the
// expected unauthenticated state, not an error; other failures (such as
// permission denied) are returned.
func (s *TokenStore) Exists() (bool, error) {
	_, err := os.Stat(s.tokenPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check token file: %w", err)
}

// Delete removes the token file.
func (s *TokenStore) Delete() error {
	err := os.Remove(s.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
