package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App:         AppConfig{Env: "local", Port: 8080},
		DB:          DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "fia"},
		Redis:       RedisConfig{Host: "localhost", Port: 6379},
		Auth:        AuthConfig{JWTSecret: "secret", APIKey: "internal"},
		UOWS:        UOWSConfig{BaseURL: "https://uows.example", APIKey: "key"},
		Allocations: AllocationsConfig{URL: "https://allocations.example/graphql"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_DefaultsApplied(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Auth.AccessTokenTTL != 10*time.Minute {
		t.Fatalf("expected 10m access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Login.AttemptLimit != 10 || c.Login.AttemptWindow != time.Minute {
		t.Fatalf("expected login limiter defaults, got %d/%v", c.Login.AttemptLimit, c.Login.AttemptWindow)
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validConfig()
	c.App.Env = "production"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_AccessTTLMustBeShorterThanRefresh(t *testing.T) {
	c := validConfig()
	c.Auth.AccessTokenTTL = 13 * time.Hour
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for access TTL exceeding refresh TTL")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "8000")
	t.Setenv("DB_HOST", "db.example")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "fia")
	t.Setenv("REDIS_HOST", "redis.example")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_LIFETIME_MINUTES", "5")
	t.Setenv("FIA_AUTH_API_KEY", "internal")
	t.Setenv("UOWS_URL", "https://uows.example")
	t.Setenv("UOWS_API_KEY", "key")
	t.Setenv("ALLOCATIONS_URL", "https://allocations.example/graphql")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Auth.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m access TTL, got %v", c.Auth.AccessTokenTTL)
	}
	if c.HTTPAddr() != ":8000" {
		t.Fatalf("unexpected addr %q", c.HTTPAddr())
	}
	if c.RedisAddr() != "redis.example:6379" {
		t.Fatalf("unexpected redis addr %q", c.RedisAddr())
	}
}

func TestLoad_MissingPortFails(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	// APP_PORT intentionally unset; clear anything inherited.
	t.Setenv("APP_PORT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected load failure without APP_PORT")
	}
}
