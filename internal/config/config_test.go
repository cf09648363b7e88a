package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "5000" {
		t.Errorf("default port = %q, expected %q", cfg.Server.Port, "5000")
	}
	if cfg.Mongo.Database != "gymmini" {
		t.Errorf("default database = %q, expected %q", cfg.Mongo.Database, "gymmini")
	}
	if cfg.JWT.ExpireHour != 168 {
		t.Errorf("default jwt expire hours = %d, expected 168", cfg.JWT.ExpireHour)
	}
	if cfg.Email.Enabled {
		t.Error("email should be disabled by default")
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRE_HOUR", "24")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("mongo uri = %q", cfg.Mongo.URI)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("jwt expire hours = %d, expected 24", cfg.JWT.ExpireHour)
	}
}

func TestOverrideFromEnv_InvalidExpireHour(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOUR", "not-a-number")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if cfg.JWT.ExpireHour != 168 {
		t.Errorf("invalid expire hours should keep default, got %d", cfg.JWT.ExpireHour)
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
	}{
		{"plain", "redis://localhost:6379", "localhost:6379", "", 0},
		{"with password", "redis://:secret@cache:6380", "cache:6380", "secret", 0},
		{"with db", "redis://localhost:6379/2", "localhost:6379", "", 2},
		{"full", "redis://:p4ss@cache:6380/5", "cache:6380", "p4ss", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.parseRedisURL(tt.url)

			if cfg.Redis.Addr != tt.addr {
				t.Errorf("addr = %q, expected %q", cfg.Redis.Addr, tt.addr)
			}
			if cfg.Redis.Password != tt.password {
				t.Errorf("password = %q, expected %q", cfg.Redis.Password, tt.password)
			}
			if cfg.Redis.DB != tt.db {
				t.Errorf("db = %d, expected %d", cfg.Redis.DB, tt.db)
			}
		})
	}
}
