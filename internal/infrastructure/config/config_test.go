package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Mongo.Database != "veicsys" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.Cookie != "veicsys_session" || cfg.Session.ResolveTimeout != 2*time.Second {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Session.PreserveReturnPath {
		t.Error("return path must not be preserved by default")
	}
	if cfg.CNPJ.APIURL != "https://brasilapi.com.br/api/cnpj/v1" {
		t.Errorf("unexpected registry url: %s", cfg.CNPJ.APIURL)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "secret",
		"ENV":                  "production",
		"TOKEN_TTL":            "1h",
		"PRESERVE_RETURN_PATH": "true",
		"EVENT_WORKERS":        "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsDevelopment() || cfg.Session.TokenTTL != time.Hour || !cfg.Session.PreserveReturnPath || cfg.Events.Workers != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"zero workers":   {"JWT_SECRET": "s", "EVENT_WORKERS": "0"},
		"zero timeout":   {"JWT_SECRET": "s", "SESSION_RESOLVE_TIMEOUT": "0s"},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
