package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/githbnaboulsi/shipcore-api/internal/auth/ebay"
	"github.com/githbnaboulsi/shipcore-api/internal/auth/token"
	"github.com/githbnaboulsi/shipcore-api/internal/logging"
)

// TokenService is the slice of token.Manager used by the OAuth routes.
type TokenService interface {
	Exchange(ctx context.Context, account, code string) error
	Status(ctx context.Context, account string) token.Status
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// ExchangeHandler trades {"code": ...} for tokens on the default account.
// Success is {"ok": true}; token material is never echoed.
func ExchangeHandler(svc TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body exchangeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "message": "Invalid request body"})
			return
		}

		err := svc.Exchange(r.Context(), DefaultAccount, body.Code)
		if err == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
			return
		}

		status, resp := exchangeFailure(err)
		log.Printf("%s❌ OAuth exchange failed (%d): %v", logging.Prefix(r.Context()), status, err)
		writeJSON(w, status, resp)
	}
}

func exchangeFailure(err error) (int, map[string]interface{}) {
	if errors.Is(err, ebay.ErrInvalidRequest) {
		return http.StatusBadRequest, map[string]interface{}{"ok": false, "message": "Missing code"}
	}

	if exErr, ok := ebay.AsExchangeError(err); ok {
		switch exErr.Kind {
		case ebay.Rejected:
			return http.StatusBadGateway, map[string]interface{}{
				"ok":      false,
				"message": "eBay token exchange failed",
				"error":   exErr.Body,
			}
		case ebay.Malformed:
			var detail interface{} = exErr.Payload
			if exErr.Payload == nil {
				detail = exErr.Body
			}
			return http.StatusBadGateway, map[string]interface{}{
				"ok":      false,
				"message": "No access_token from eBay",
				"error":   detail,
			}
		case ebay.Transport:
			return http.StatusBadGateway, map[string]interface{}{
				"ok":      false,
				"message": "eBay token exchange failed",
				"error":   exErr.Error(),
			}
		}
	}

	return http.StatusInternalServerError, map[string]interface{}{"ok": false, "error": err.Error()}
}

// StatusHandler always answers 200 {"connected": bool}.
func StatusHandler(svc TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := r.URL.Query().Get("account")
		if account == "" {
			account = DefaultAccount
		}
		writeJSON(w, http.StatusOK, svc.Status(r.Context(), account))
	}
}
