package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" || !cfg.IsDevelopment() {
		t.Errorf("unexpected server defaults: port=%s env=%s", cfg.Port, cfg.Env)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("expected a 7 day session, got %s", cfg.SessionTTL)
	}
	if cfg.Mongo.Database != "BloodDonation" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.AuditWorkers != 4 {
		t.Errorf("expected 4 audit workers, got %d", cfg.AuditWorkers)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                 "production",
		"JWT_SECRET":          "s3cret",
		"CORS_ORIGINS":        "https://a.example,https://b.example",
		"SESSION_TTL":         "1h",
		"FIREBASE_PROJECT_ID": "blood-donation",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDevelopment() || cfg.SessionTTL != time.Hour || len(cfg.CORSOrigins) != 2 || cfg.Firebase.ProjectID != "blood-donation" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"production without secret": {"ENV": "production"},
		"no audit workers":          {"AUDIT_WORKERS": "0"},
		"bad duration":              {"SESSION_TTL": "soon"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
