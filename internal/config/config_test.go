package config

import "testing"

func TestAllowedOrigin(t *testing.T) {
	cfg := &Config{Whitelist: []string{"http://localhost:5173", "http://127.0.0.1:3500"}}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"http://127.0.0.1:3500", true},
		{"", true}, // same-host tools send no origin
		{"http://evil.example", false},
		{"http://localhost:5174", false},
	}
	for _, tc := range tests {
		if got := cfg.AllowedOrigin(tc.origin); got != tc.want {
			t.Errorf("AllowedOrigin(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test-does-not-exist")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3500 {
		t.Errorf("expected default port 3500, got %d", cfg.Port)
	}
	if cfg.MongoDB != "pixelpals" {
		t.Errorf("expected default db pixelpals, got %q", cfg.MongoDB)
	}
	if cfg.StoreTimeout.Seconds() != 3 {
		t.Errorf("expected 3s store timeout, got %v", cfg.StoreTimeout)
	}
	if len(cfg.Whitelist) == 0 {
		t.Error("expected default whitelist")
	}
}
