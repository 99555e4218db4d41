package ebay

import (
	"context"
	"errors"
	"testing"

	"github.com/githbnaboulsi/shipcore-api/internal/secrets"
	"golang.org/x/oauth2"
)

func TestGetOAuthConfig(t *testing.T) {
	provider := secrets.Static{
		DefaultSecretNames.ClientID:     "cid",
		DefaultSecretNames.ClientSecret: "csecret",
		DefaultSecretNames.RuName:       "ru-name",
	}

	cfg, err := GetOAuthConfig(context.Background(), provider, DefaultSecretNames, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClientID != "cid" || cfg.ClientSecret != "csecret" || cfg.RedirectURL != "ru-name" {
		t.Errorf("credentials not mapped: %+v", cfg)
	}
	if cfg.Endpoint.TokenURL != TokenURL {
		t.Errorf("token url = %s, want production default", cfg.Endpoint.TokenURL)
	}
	if cfg.Endpoint.AuthStyle != oauth2.AuthStyleInHeader {
		t.Errorf("auth style = %v, want header", cfg.Endpoint.AuthStyle)
	}
}

func TestGetOAuthConfig_MissingSecret(t *testing.T) {
	provider := secrets.Static{DefaultSecretNames.ClientID: "cid"}

	_, err := GetOAuthConfig(context.Background(), provider, DefaultSecretNames, "")
	if !errors.Is(err, secrets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
