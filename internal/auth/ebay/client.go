package ebay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/logging"
	"github.com/githbnaboulsi/shipcore-api/internal/util"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds the whole exchange round trip.
	DefaultTimeout = 20 * time.Second

	maxResponseBytes = 1 << 20
)

// Client performs the authorization-code grant against the token endpoint.
// It never retries and never touches storage.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose calls fail with a Transport error once
// timeout elapses. A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Exchange trades code for tokens. The returned token carries the full decoded
// response, reachable through Token.Extra.
func (c *Client) Exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidRequest
	}

	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {NormalizeCode(code)},
		"redirect_uri": {cfg.RedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ExchangeError{Kind: Transport, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)

	prefix := logging.Prefix(ctx)
	log.Printf("%s🔄 Exchanging authorization code at %s", prefix, cfg.Endpoint.TokenURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("%s❌ Token exchange request failed: %v", prefix, err)
		return nil, &ExchangeError{Kind: Transport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ExchangeError{Kind: Transport, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("%s❌ Token exchange rejected (%d): %s", prefix, resp.StatusCode, util.TruncateBytes(body))
		return nil, &ExchangeError{Kind: Rejected, StatusCode: resp.StatusCode, Body: string(body)}
	}

	payload, err := decodePayload(body)
	if err != nil {
		log.Printf("%s⚠️ Token exchange returned undecodable body: %s", prefix, util.TruncateBytes(body))
		return nil, &ExchangeError{Kind: Malformed, StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}

	accessToken, _ := payload["access_token"].(string)
	if accessToken == "" {
		log.Printf("%s⚠️ Token exchange response has no access_token", prefix)
		return nil, &ExchangeError{Kind: Malformed, StatusCode: resp.StatusCode, Body: string(body), Payload: payload}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    stringValue(payload["token_type"]),
		RefreshToken: stringValue(payload["refresh_token"]),
	}
	log.Printf("%s✅ Token exchange succeeded (access=%s)", prefix, util.MaskSecret(accessToken))
	return token.WithExtra(payload), nil
}

// NormalizeCode decodes a percent-encoded code once. Codes without a '%' pass
// through untouched. Each valid %XX escape is decoded on its own; a malformed
// escape stays literal and does not stop the rest from decoding.
func NormalizeCode(code string) string {
	if !strings.Contains(code, "%") {
		return code
	}
	var b strings.Builder
	b.Grow(len(code))
	for i := 0; i < len(code); i++ {
		if code[i] == '%' && i+2 < len(code) {
			hi, okHi := unhex(code[i+1])
			lo, okLo := unhex(code[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(code[i])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func decodePayload(body []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("decode token response: not a JSON object")
	}
	return payload, nil
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
