package ebay

import (
	"context"
	"fmt"

	"github.com/githbnaboulsi/shipcore-api/internal/secrets"
	"golang.org/x/oauth2"
)

// TokenURL is the production identity endpoint.
const TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"

// SecretNames are the parameter names holding the app credentials.
type SecretNames struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RuName       string `yaml:"ru_name"`
}

// DefaultSecretNames matches the parameters provisioned for production.
var DefaultSecretNames = SecretNames{
	ClientID:     "/shipcore/ebay/client_id",
	ClientSecret: "/shipcore/ebay/client_secret",
	RuName:       "/shipcore/ebay/ru_name",
}

// GetOAuthConfig resolves the app credentials and returns them as an OAuth2
// config. RedirectURL carries the RuName, which eBay expects in place of a URL.
// Every call hits the provider; nothing is cached.
func GetOAuthConfig(ctx context.Context, provider secrets.Provider, names SecretNames, tokenURL string) (*oauth2.Config, error) {
	clientID, err := provider.Get(ctx, names.ClientID)
	if err != nil {
		return nil, fmt.Errorf("resolve client id: %w", err)
	}
	clientSecret, err := provider.Get(ctx, names.ClientSecret)
	if err != nil {
		return nil, fmt.Errorf("resolve client secret: %w", err)
	}
	ruName, err := provider.Get(ctx, names.RuName)
	if err != nil {
		return nil, fmt.Errorf("resolve ru_name: %w", err)
	}
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  ruName,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}, nil
}
