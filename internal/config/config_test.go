package config

import (
	"testing"
	"time"
)

func TestLoadGatewayDefaults(t *testing.T) {
	t.Setenv("GATEWAY_JWT_SECRET", "test-secret")

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("load gateway config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.AuthURL != "http://localhost:8081" {
		t.Errorf("unexpected auth url: %s", cfg.AuthURL)
	}
	if cfg.JWT.Lifetime != 30*time.Minute {
		t.Errorf("unexpected token lifetime: %s", cfg.JWT.Lifetime)
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("unexpected secret: %s", cfg.JWT.Secret)
	}
}

func TestLoadGatewayRequiresSecret(t *testing.T) {
	if _, err := LoadGateway(); err == nil {
		t.Fatal("expected error when GATEWAY_JWT_SECRET is unset")
	}
}

func TestLoadScoresOverrides(t *testing.T) {
	t.Setenv("SCORES_ADDR", ":9999")
	t.Setenv("SCORES_CREATIONS_URL", "http://creations.internal:8082")
	t.Setenv("SCORES_REQUEST_TIMEOUT", "2s")

	cfg, err := LoadScores()
	if err != nil {
		t.Fatalf("load scores config: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.CreationsURL != "http://creations.internal:8082" {
		t.Errorf("unexpected creations url: %s", cfg.CreationsURL)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.RequestTimeout)
	}
}
