// Package credentials loads the Google service-account keyfile used for the
// Drive and Sheets collaborators.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// ServiceAccount holds a parsed service-account keyfile. The raw JSON is kept
// so the Google SDK can consume it unchanged.
type ServiceAccount struct {
	raw []byte

	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Load reads and validates a service-account keyfile from disk.
func Load(path string) (*ServiceAccount, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("credentials: keyfile path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read keyfile: %w", err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("credentials: parse keyfile: %w", err)
	}
	if sa.Type != "service_account" {
		return nil, fmt.Errorf("credentials: keyfile type %q, want service_account", sa.Type)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, errors.New("credentials: keyfile is missing client_email or private_key")
	}
	sa.raw = raw
	return &sa, nil
}

// JWTConfig builds a two-legged OAuth config scoped for one Google API.
func (s *ServiceAccount) JWTConfig(scopes ...string) (*jwt.Config, error) {
	cfg, err := google.JWTConfigFromJSON(s.raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("credentials: jwt config: %w", err)
	}
	return cfg, nil
}
