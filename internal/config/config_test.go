package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "knst_site_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("AUTH_JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Upload.MaxImageBytes != 5*1024*1024 {
		t.Fatalf("unexpected upload ceiling: %d", cfg.Upload.MaxImageBytes)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("expected AUTH_JWT_SECRET to be picked up")
	}
}
