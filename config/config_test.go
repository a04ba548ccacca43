package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dropoff-intake-api/utils"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "SERVER_PORT", "AUTH_REALM", "DASHBOARD_USERS", "SMTP_HOST", "SMTP_FROM", "SMTP_PORT", "SMTP_TIMEOUT", "TRUSTED_PROXIES")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "Drop-off Dashboard", cfg.Auth.Realm)
	assert.Empty(t, cfg.Auth.Users)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 10*time.Second, cfg.Mail.Timeout)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoadCredentialMap(t *testing.T) {
	t.Setenv("DASHBOARD_USERS", "admin:hunter2, desk : front ,:orphan")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"admin": "hunter2", "desk": "front"}, cfg.Auth.Users)
}

func TestLoadNotifyEmails(t *testing.T) {
	unsetEnv(t, "SMTP_PORT")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "Drop-off <no-reply@example.com>")
	t.Setenv("NOTIFY_EMAILS", "a@example.com, ,b@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.NotifyEmails)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.4,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, cfg.TrustedProxies)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "3306", Database: "dropoff", Username: "shop", Password: "pw"}

	assert.Equal(t,
		"shop:pw@tcp(db:3306)/dropoff?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		d.DSN())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "Production"}).IsProduction())
	assert.False(t, (&Config{Environment: "development"}).IsProduction())
}

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestHashedCredentialSurvivesDotEnvWhenSingleQuoted(t *testing.T) {
	unsetEnv(t, "DASHBOARD_USERS")
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	require.NoError(t, godotenv.Load(writeEnvFile(t, "DASHBOARD_USERS='admin:"+hash+"'\n")))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, hash, cfg.Auth.Users["admin"])
	assert.True(t, utils.CheckPasswordHash("s3cret", cfg.Auth.Users["admin"]))
	assert.Empty(t, cfg.Auth.CredentialWarnings())
}

func TestUnquotedHashInDotEnvIsFlagged(t *testing.T) {
	unsetEnv(t, "DASHBOARD_USERS")
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	require.NoError(t, godotenv.Load(writeEnvFile(t, "DASHBOARD_USERS=admin:"+hash+"\n")))
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEqual(t, hash, cfg.Auth.Users["admin"])
	assert.False(t, utils.CheckPasswordHash("s3cret", cfg.Auth.Users["admin"]))
	assert.Len(t, cfg.Auth.CredentialWarnings(), 1)
}

func TestCredentialWarnings(t *testing.T) {
	auth := AuthConfig{Users: map[string]string{
		"plain":     "hunter2",
		"truncated": "$2a$10$tooShort",
	}}

	warnings := auth.CredentialWarnings()

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"truncated"`)
}
