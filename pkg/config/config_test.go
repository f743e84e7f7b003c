package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.App.Port)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default")
	}
	if cfg.Data.VendorsFile == "" || cfg.Data.PaidOrdersFile == "" {
		t.Fatalf("expected default file names to be set")
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("cache should be disabled without an address")
	}
}

func TestRedisEnabled(t *testing.T) {
	t.Setenv("ARRIVAGE_REDIS_ADDR", "localhost:6379")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected cache to be enabled with an address")
	}
}
