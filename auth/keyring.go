// Package auth stores the quiz generation API key in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/animeverse/animeverse/constant"
	"github.com/animeverse/animeverse/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const user = "quiz-api-key"

// SetAPIKey persists the API key to the system keyring.
func SetAPIKey(apiKey string) error {
	return keyring.Set(constant.App, user, strings.TrimSpace(apiKey))
}

// DeleteAPIKey removes the API key. Removing a missing key is not an error.
func DeleteAPIKey() error {
	if err := keyring.Delete(constant.App, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// APIKey returns the configured key, falling back to the keyring.
// An empty string means no key is available.
func APIKey() string {
	if k := strings.TrimSpace(viper.GetString(key.QuizAPIKey)); k != "" {
		return k
	}

	k, err := keyring.Get(constant.App, user)
	if err != nil {
		return ""
	}
	return k
}
