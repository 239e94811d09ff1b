package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/classroom/scheduler/internal/core/domain"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=720h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	Database DatabaseConfig
	Demo     DemoConfig
	Redis    RedisConfig
	Google   GoogleConfig
}

type DatabaseConfig struct {
	URL                string `env:"DATABASE_URL"`
	SupabasePassword   string `env:"SUPABASE_PASSWORD"`
	SupabaseHost       string `env:"SUPABASE_HOST"`
	SupabaseProjectRef string `env:"SUPABASE_PROJECT_REF"`
	MongoDatabase      string `env:"MONGO_DB, default=class_scheduler"`
}

type DemoConfig struct {
	Enabled  bool   `env:"DEMO_LOGIN,    default=false"`
	Email    string `env:"DEMO_EMAIL,    default=demo@scheduler.local"`
	Password string `env:"DEMO_PASSWORD, default=demo123"`
	Role     string `env:"DEMO_ROLE,     default=ADMIN"`
}

// RedisConfig is optional. An empty Addr disables the revocation list.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// Enabled reports whether Google sign-in is fully configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// placeholderMarkers are the template values shipped in example env files.
var placeholderMarkers = []string{"YOUR_SUPABASE_HOST", "YOUR_SUPABASE_PASSWORD", "YOUR_PROJECT_REF"}

// ResolveURL returns the database URL to connect to, or "" when the process
// should run without a store. A missing or template DATABASE_URL is replaced
// by a Supabase URL built from the SUPABASE_* variables when they are set.
func (d DatabaseConfig) ResolveURL() string {
	if d.URL != "" && !isPlaceholder(d.URL) {
		return d.URL
	}

	host := d.SupabaseHost
	if host == "" && d.SupabaseProjectRef != "" {
		host = "db." + d.SupabaseProjectRef + ".supabase.co"
	}
	if d.SupabasePassword == "" || host == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword("postgres", d.SupabasePassword),
		Host:     host + ":5432",
		Path:     "/postgres",
		RawQuery: "pgbouncer=true",
	}
	return u.String()
}

func isPlaceholder(raw string) bool {
	for _, m := range placeholderMarkers {
		if strings.Contains(raw, m) {
			return true
		}
	}
	return false
}

// DemoConfig returns the demo login settings with the role already parsed.
func (c *Config) DemoConfig() domain.DemoConfig {
	role, _ := domain.NormalizeRole(c.Demo.Role)
	return domain.DemoConfig{
		Enabled:  c.Demo.Enabled,
		Email:    c.Demo.Email,
		Password: c.Demo.Password,
		Role:     role,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if _, err := domain.NormalizeRole(cfg.Demo.Role); err != nil {
		return nil, fmt.Errorf("DEMO_ROLE: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}

// LoadDatabaseFrom reads only the database settings. Tools that never serve
// requests, like the migration CLI, use it so they do not need JWT_SECRET.
func LoadDatabaseFrom(ctx context.Context, l envconfig.Lookuper) (*DatabaseConfig, error) {
	var cfg DatabaseConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
