package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dropoff-intake-api/utils"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Port        string `env:"SERVER_PORT" envDefault:"3000"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	DebugSQL    bool   `env:"DEBUG_SQL"`

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty trusts none and logs the socket peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Database DatabaseConfig `envPrefix:"DB_"`
	Auth     AuthConfig
	Mail     MailConfig `envPrefix:"SMTP_"`

	// NotifyEmails receives a message for every new submission when mail is configured.
	NotifyEmails []string `env:"NOTIFY_EMAILS" envSeparator:","`
}

// DatabaseConfig describes the MySQL connection.
type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"127.0.0.1"`
	Port     string `env:"PORT" envDefault:"3306"`
	Database string `env:"DATABASE" envDefault:"dropoff"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

// AuthConfig configures the basic-auth gate in front of the dashboard routes.
// Users maps username to password; a password beginning with "$2" is treated
// as a bcrypt hash.
type AuthConfig struct {
	Realm string            `env:"AUTH_REALM" envDefault:"Drop-off Dashboard"`
	Users map[string]string `env:"DASHBOARD_USERS" envSeparator:"," envKeyValSeparator:":"`
}

// CredentialWarnings lists entries that cannot work as written: a "$2" value
// that is not a valid bcrypt hash, or a plain value that looks like a hash
// whose "$" segments were expanded by the shell or .env loader. Values
// holding a hash must be single-quoted in .env files.
func (a AuthConfig) CredentialWarnings() []string {
	var warnings []string
	for user, pass := range a.Users {
		switch {
		case strings.HasPrefix(pass, "$2") && !utils.IsBcryptHash(pass):
			warnings = append(warnings, fmt.Sprintf("password for %q starts with $2 but is not a valid bcrypt hash", user))
		case utils.LooksLikeMangledHash(pass):
			warnings = append(warnings, fmt.Sprintf("password for %q looks like a bcrypt hash with its $ segments expanded; single-quote DASHBOARD_USERS in .env", user))
		}
	}
	sort.Strings(warnings)
	return warnings
}

// MailConfig configures the optional new-submission notification.
type MailConfig struct {
	Host          string        `env:"HOST"`
	Port          int           `env:"PORT" envDefault:"587"`
	User          string        `env:"USER"`
	Pass          string        `env:"PASS"`
	From          string        `env:"FROM"`
	SkipTLSVerify bool          `env:"SKIP_TLS_VERIFY"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether SMTP is configured well enough to send.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// DSN builds the go-sql-driver data source name.
// clientFoundRows makes UPDATE report matched rows instead of changed rows.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

func trimList(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	users := make(map[string]string, len(cfg.Auth.Users))
	for user, pass := range cfg.Auth.Users {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		users[user] = strings.TrimSpace(pass)
	}
	cfg.Auth.Users = users

	cfg.NotifyEmails = trimList(cfg.NotifyEmails)
	cfg.TrustedProxies = trimList(cfg.TrustedProxies)

	return &cfg, nil
}
