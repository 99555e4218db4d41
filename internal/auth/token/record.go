package token

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"golang.org/x/oauth2"
)

// NewTokenRecord normalizes an exchange response issued at issuedAt.
//
// An expires_in field that is missing or null is stored as nil. A present value
// is stored as-is, but the matching *ExpiresAt is only set for a positive
// duration: zero (or negative) lifetimes are recorded as unknown expiry, which
// the status check treats as not connected.
func NewTokenRecord(account, environment string, tok *oauth2.Token, issuedAt time.Time) (*models.TokenRecord, error) {
	issuedAt = issuedAt.UTC()

	accessIn, err := expiresIn(tok.Extra("expires_in"))
	if err != nil {
		return nil, fmt.Errorf("expires_in: %w", err)
	}
	refreshIn, err := expiresIn(tok.Extra("refresh_token_expires_in"))
	if err != nil {
		return nil, fmt.Errorf("refresh_token_expires_in: %w", err)
	}

	return &models.TokenRecord{
		Account:          account,
		Environment:      environment,
		TokenType:        extraString(tok, "token_type", tok.TokenType),
		Scope:            extraString(tok, "scope", ""),
		AccessToken:      tok.AccessToken,
		RefreshToken:     tok.RefreshToken,
		AccessExpiresIn:  accessIn,
		RefreshExpiresIn: refreshIn,
		AccessExpiresAt:  expiresAt(issuedAt, accessIn),
		RefreshExpiresAt: expiresAt(issuedAt, refreshIn),
		IssuedAt:         issuedAt,
	}, nil
}

// maxLifetimeSeconds caps expiry arithmetic well inside time.Time's range.
// time.Duration alone tops out near 292 years.
const maxLifetimeSeconds = 1 << 50

func expiresAt(issuedAt time.Time, seconds *int64) *time.Time {
	if seconds == nil || *seconds <= 0 {
		return nil
	}
	s := *seconds
	if s > maxLifetimeSeconds {
		s = maxLifetimeSeconds
	}
	t := time.Unix(issuedAt.Unix()+s, int64(issuedAt.Nanosecond())).UTC()
	return &t
}

func truncFloat(f float64) (int64, error) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("out of range: %v", f)
	}
	return int64(math.Trunc(f)), nil
}

// expiresIn reads an integer lifetime in seconds. nil means absent.
func expiresIn(v interface{}) (*int64, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return nil, fmt.Errorf("not an integer: %q", x.String())
			}
			if i, err = truncFloat(f); err != nil {
				return nil, err
			}
		}
		n = i
	case float64:
		i, err := truncFloat(x)
		if err != nil {
			return nil, err
		}
		n = i
	case int:
		n = int64(x)
	case int64:
		n = x
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", x)
		}
		n = i
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
	return &n, nil
}

func extraString(tok *oauth2.Token, key, fallback string) string {
	switch v := tok.Extra(key).(type) {
	case string:
		return v
	case nil:
		return fallback
	default:
		return fmt.Sprint(v)
	}
}
