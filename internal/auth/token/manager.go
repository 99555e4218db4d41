package token

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/auth/ebay"
	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"github.com/githbnaboulsi/shipcore-api/internal/logging"
	"golang.org/x/oauth2"
)

const (
	// DefaultSkew is subtracted from the refresh token lifetime before the
	// account counts as connected.
	DefaultSkew = 30 * time.Second
	// DefaultEnvironment tags every stored record.
	DefaultEnvironment = "production"
)

// Store persists one TokenRecord per account.
type Store interface {
	// FindToken returns nil, nil when the account has no record.
	FindToken(ctx context.Context, account string) (*models.TokenRecord, error)
	// UpsertToken replaces the whole record for rec.Account.
	UpsertToken(ctx context.Context, rec *models.TokenRecord) error
}

// Exchanger trades an authorization code for tokens.
type Exchanger interface {
	Exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error)
}

// ConfigSource resolves client credentials for one exchange.
type ConfigSource func(ctx context.Context) (*oauth2.Config, error)

// Status is the answer of the connection probe.
type Status struct {
	Connected bool `json:"connected"`
}

// Manager handles the token lifecycle: the initial code exchange and the
// read-only connection status. It holds no per-request state.
type Manager struct {
	store       Store
	exchanger   Exchanger
	oauthConfig ConfigSource
	environment string
	skew        time.Duration
	now         func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithSkew overrides DefaultSkew.
func WithSkew(skew time.Duration) Option {
	return func(m *Manager) { m.skew = skew }
}

// WithEnvironment overrides DefaultEnvironment.
func WithEnvironment(env string) Option {
	return func(m *Manager) {
		if env != "" {
			m.environment = env
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a new token manager
func NewManager(store Store, exchanger Exchanger, oauthConfig ConfigSource, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		exchanger:   exchanger,
		oauthConfig: oauthConfig,
		environment: DefaultEnvironment,
		skew:        DefaultSkew,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Exchange trades code for tokens and overwrites the record for account.
// Token material is never returned. Errors from the exchange client are
// passed through so callers can classify them.
func (m *Manager) Exchange(ctx context.Context, account, code string) error {
	if account == "" {
		return fmt.Errorf("exchange: account is required")
	}
	if strings.TrimSpace(code) == "" {
		return ebay.ErrInvalidRequest
	}

	cfg, err := m.oauthConfig(ctx)
	if err != nil {
		return fmt.Errorf("load oauth config: %w", err)
	}

	tok, err := m.exchanger.Exchange(ctx, cfg, code)
	if err != nil {
		return err
	}

	// One instant for every expiry computed from this response.
	now := m.now().UTC()
	rec, err := NewTokenRecord(account, m.environment, tok, now)
	if err != nil {
		return err
	}

	if err := m.store.UpsertToken(ctx, rec); err != nil {
		return err
	}

	log.Printf("%s✅ Stored %s token for account %s (refresh expires: %s)",
		logging.Prefix(ctx), rec.Environment, account, formatExpiry(rec.RefreshExpiresAt))
	return nil
}

// Status reports whether account holds a refresh token that outlives now by
// more than the skew. The access token expiry is not consulted. Every failure
// degrades to not connected.
func (m *Manager) Status(ctx context.Context, account string) (status Status) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s⚠️ Status check for %s panicked: %v", logging.Prefix(ctx), account, r)
			status = Status{}
		}
	}()

	rec, err := m.store.FindToken(ctx, account)
	if err != nil {
		log.Printf("%s⚠️ Status lookup for %s failed: %v", logging.Prefix(ctx), account, err)
		return Status{}
	}
	if rec == nil {
		return Status{}
	}
	return Status{Connected: RefreshUsable(rec, m.now(), m.skew)}
}

// RefreshUsable is the connection predicate: refreshExpiresAt > now + skew.
// A record with unknown refresh expiry is never usable.
func RefreshUsable(rec *models.TokenRecord, now time.Time, skew time.Duration) bool {
	if rec == nil || rec.RefreshExpiresAt == nil {
		return false
	}
	return rec.RefreshExpiresAt.UTC().After(now.UTC().Add(skew))
}

func formatExpiry(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format(time.RFC3339)
}
