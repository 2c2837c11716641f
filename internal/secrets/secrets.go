package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"signalscout-engine/internal/config"
)

// Service groups this app's secrets in the OS keychain.
const Service = "signalscout"

const searchKeyAccount = "search_api_key"

// SearchAPIKey resolves the search API key: keyring first (when enabled),
// then the configured environment variable. Empty means the search source is
// skipped, so no error for a missing key.
func SearchAPIKey(cfg config.Config) string {
	if cfg.Search.Keyring {
		if key, err := keyring.Get(Service, searchKeyAccount); err == nil && strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key)
		}
	}
	if cfg.Search.APIKeyEnv != "" {
		return strings.TrimSpace(os.Getenv(cfg.Search.APIKeyEnv))
	}
	return ""
}

func SetSearchAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("search API key is empty")
	}
	return keyring.Set(Service, searchKeyAccount, key)
}

func imapAccount(cfg config.Config) string {
	return fmt.Sprintf("imap:%s@%s", cfg.PressMail.Username, cfg.PressMail.IMAPHost)
}

// IMAPPassword looks up the press-mail password in the keychain, falling back
// to SIGNALSCOUT_IMAP_PASSWORD.
func IMAPPassword(cfg config.Config) (string, error) {
	if pw, err := keyring.Get(Service, imapAccount(cfg)); err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if pw := os.Getenv("SIGNALSCOUT_IMAP_PASSWORD"); pw != "" {
		return pw, nil
	}
	return "", errors.New("IMAP password not found (set it in keychain or via env)")
}

func SetIMAPPassword(cfg config.Config, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(Service, imapAccount(cfg), password)
}
