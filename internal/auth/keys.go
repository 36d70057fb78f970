package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aidanwoods.dev/go-paseto"
)

// LoadOrGenerateKeypair loads or generates the development identity keypair.
// The Ed25519 secret key is stored in <dataPath>/identity.key as a hex string.
// If the file doesn't exist, a new keypair is generated and saved.
// Returns the hex-encoded secret and public keys.
//
// This keypair stands in for the external identity provider during local
// development; production sets AUTH_PUBLIC_KEY and never touches this file.
func LoadOrGenerateKeypair(dataPath string) (secretHex, publicHex string, err error) {
	keyPath := filepath.Join(dataPath, "identity.key")

	//#nosec G304 -- Key path is derived from the validated data path
	if keyBytes, readErr := os.ReadFile(keyPath); readErr == nil {
		secretHex = strings.TrimSpace(string(keyBytes))

		key, parseErr := paseto.NewV4AsymmetricSecretKeyFromHex(secretHex)
		if parseErr != nil {
			return "", "", fmt.Errorf("invalid identity key file %s: %w", keyPath, parseErr)
		}
		return secretHex, key.Public().ExportHex(), nil
	}

	key := paseto.NewV4AsymmetricSecretKey()
	secretHex = key.ExportHex()

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return "", "", fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(keyPath, []byte(secretHex+"\n"), 0o600); err != nil {
		return "", "", fmt.Errorf("failed to save identity key: %w", err)
	}

	return secretHex, key.Public().ExportHex(), nil
}
