package configs

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

const newKeysFile = ".env.new_keys"

// GenerateJWTSecret returns a random 64-byte secret, base64url encoded.
func GenerateJWTSecret() (string, error) {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return "", fmt.Errorf("could not generate JWT secret")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

func GenerateAndPrintKeys() error {
	fmt.Println("Generating new JWT secret...")

	secret, err := GenerateJWTSecret()
	if err != nil {
		return err
	}

	fmt.Println("\n================================================")
	fmt.Printf("JWT_SECRET=%s\n", secret)
	fmt.Println("================================================")

	fullPath, err := filepath.Abs(newKeysFile)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", newKeysFile, err)
	}

	if err := os.WriteFile(newKeysFile, []byte(fmt.Sprintf("JWT_SECRET=%s\n", secret)), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", newKeysFile, err)
	}

	fmt.Printf("\nKeys have been written to '%s'.\n", fullPath)
	fmt.Println("Regenerating the secret invalidates every token already issued.")

	return nil
}
