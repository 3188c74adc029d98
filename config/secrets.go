package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrSecretNotConfigured means no secret exists for the identity.
	ErrSecretNotConfigured = errors.New("no password configured")
	// ErrInvalidSecret means the supplied password did not match.
	ErrInvalidSecret = errors.New("invalid password")
)

// Env keys reserved for role secrets rather than per-sales secrets.
var reservedSecretKeys = map[string]bool{
	"DOWNLOAD_PASSWORD": true,
	"APPROVAL_PASSWORD": true,
	"LEVEL1_PASSWORD":   true,
	"LEVEL2_PASSWORD":   true,
}

// SecretStore holds the shared-secret material: the role secrets plus the
// per-sales download secrets, all resolved once at startup. Sales secrets
// live in env vars named after the person (see EnvKeyFor).
type SecretStore struct {
	master   string
	approval string
	level1   string
	level2   string
	sales    map[string]string
}

// Secrets is populated by Connect.
var Secrets *SecretStore

// LoadSecrets builds the secret store from the environment.
func LoadSecrets() {
	s := &SecretStore{
		master:   os.Getenv("DOWNLOAD_PASSWORD"),
		approval: os.Getenv("APPROVAL_PASSWORD"),
		level1:   os.Getenv("LEVEL1_PASSWORD"),
		level2:   os.Getenv("LEVEL2_PASSWORD"),
		sales:    map[string]string{},
	}
	for _, kv := range os.Environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasSuffix(key, "_PASSWORD") || reservedSecretKeys[key] {
			continue
		}
		s.sales[key] = value
	}
	Secrets = s
}

var nonWordRe = regexp.MustCompile(`[^\w]`)

// EnvKeyFor derives the env var holding a sales person's secret:
// "Rahul Shah" -> "RAHUL_SHAH_PASSWORD".
func EnvKeyFor(identity string) string {
	key := strings.TrimSpace(identity)
	key = strings.Join(strings.Fields(key), "_")
	key = nonWordRe.ReplaceAllString(key, "")
	return strings.ToUpper(key) + "_PASSWORD"
}

// VerifyMaster checks the all-data download secret.
func (s *SecretStore) VerifyMaster(password string) error {
	return verify(s.master, password)
}

// VerifyApproval checks the application approve/reject secret.
func (s *SecretStore) VerifyApproval(password string) error {
	return verify(s.approval, password)
}

// VerifyLevel checks the builder-visit review secret for level 1 or 2.
func (s *SecretStore) VerifyLevel(level int, password string) error {
	switch level {
	case 1:
		return verify(s.level1, password)
	case 2:
		return verify(s.level2, password)
	default:
		return ErrSecretNotConfigured
	}
}

// VerifySales checks a sales person's download secret.
func (s *SecretStore) VerifySales(identity, password string) error {
	return verify(s.sales[EnvKeyFor(identity)], password)
}

func verify(expected, got string) error {
	if expected == "" {
		return ErrSecretNotConfigured
	}
	if got != expected {
		return ErrInvalidSecret
	}
	return nil
}
