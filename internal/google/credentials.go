package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
)

// CredentialsEnvVar is the environment variable consulted when no key file
// path is provided. It must contain the base64-encoded service account key
// JSON.
const CredentialsEnvVar = "GOOGLE_SERVICE_ACCOUNT_CREDENTIALS"

// Credentials holds a validated service account key and remembers where it
// was loaded from. It is the factory for authenticated token sources; the
// key material itself never leaves this package.
type Credentials struct {
	keyJSON []byte
	source  string
}

// Source describes where the credentials were loaded from, for logging.
func (c *Credentials) Source() string {
	return c.source
}

// ClientEmail returns the service account email from the key, or an empty
// string if the key does not carry one.
func (c *Credentials) ClientEmail() string {
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(c.keyJSON, &key); err != nil {
		return ""
	}
	return key.ClientEmail
}

// LoadCredentials loads service account credentials from keyFile. If keyFile
// is empty or does not exist, it falls back to the CredentialsEnvVar
// environment variable. Returns an *AuthError when neither source yields a
// parseable key.
func LoadCredentials(keyFile string) (*Credentials, error) {
	if keyFile != "" {
		if _, err := os.Stat(keyFile); err == nil {
			return loadCredentialsFromFile(keyFile)
		}
	}
	return LoadCredentialsFromEnv()
}

// loadCredentialsFromFile reads and validates a service account key file.
func loadCredentialsFromFile(keyFile string) (*Credentials, error) {
	source := "file:" + keyFile

	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, newAuthError(source, fmt.Errorf("read service account key: %w", err))
	}

	if err := validateKey(data); err != nil {
		return nil, newAuthError(source, err)
	}

	return &Credentials{keyJSON: data, source: source}, nil
}

// LoadCredentialsFromEnv loads service account credentials from the
// CredentialsEnvVar environment variable (base64-encoded key JSON).
func LoadCredentialsFromEnv() (*Credentials, error) {
	source := "env:" + CredentialsEnvVar

	encoded := os.Getenv(CredentialsEnvVar)
	if encoded == "" {
		return nil, newAuthError(source,
			fmt.Errorf("no service account key file found and %s is not set", CredentialsEnvVar))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, newAuthError(source, fmt.Errorf("decode base64 key: %w", err))
	}

	if err := validateKey(data); err != nil {
		return nil, newAuthError(source, err)
	}

	return &Credentials{keyJSON: data, source: source}, nil
}

// validateKey checks that data parses as a service account key with the
// fields the JWT flow needs.
func validateKey(data []byte) error {
	if _, err := oauthgoogle.JWTConfigFromJSON(data, DefaultScopes...); err != nil {
		return fmt.Errorf("parse service account key: %w", err)
	}
	return nil
}

// TokenSource returns an authenticated token source for the default scopes.
// A non-empty subject enables domain-wide delegation: issued tokens act on
// behalf of that user instead of the service account itself.
func (c *Credentials) TokenSource(ctx context.Context, subject string) (oauth2.TokenSource, error) {
	cfg, err := oauthgoogle.JWTConfigFromJSON(c.keyJSON, DefaultScopes...)
	if err != nil {
		return nil, newAuthError(c.source, fmt.Errorf("parse service account key: %w", err))
	}
	cfg.Subject = subject
	return cfg.TokenSource(ctx), nil
}
