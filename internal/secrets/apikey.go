package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "remoteboard"

	geminiAccount = "remoteboard:gemini-api-key"
	geminiEnvVar  = "GEMINI_API_KEY"
)

// GetGeminiAPIKey resolves the LLM API key: keychain first, environment
// as a fallback for headless setups.
func GetGeminiAPIKey() (string, error) {
	pw, err := keyring.Get(KeyringService, geminiAccount)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}

	if env := strings.TrimSpace(os.Getenv(geminiEnvVar)); env != "" {
		return env, nil
	}

	return "", errors.New("gemini API key not found (set it in the keychain or via GEMINI_API_KEY)")
}

func SetGeminiAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, geminiAccount, key)
}

func DeleteGeminiAPIKey() error {
	return keyring.Delete(KeyringService, geminiAccount)
}
