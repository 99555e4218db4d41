package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/githbnaboulsi/shipcore-api/internal/logging"
)

// ProductStore inserts and lists raw product documents.
type ProductStore interface {
	InsertProduct(ctx context.Context, doc map[string]interface{}) error
	ListProducts(ctx context.Context) ([]map[string]interface{}, error)
}

// productFields lists the keys every product must carry. Values are kept raw;
// only presence is checked.
type productFields struct {
	UPC      *json.RawMessage `json:"upc" validate:"required"`
	MPN      *json.RawMessage `json:"mpn" validate:"required"`
	Category *json.RawMessage `json:"category" validate:"required"`
	Brand    *json.RawMessage `json:"brand" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// missingFields returns the absent required keys in declaration order.
func missingFields(raw []byte) ([]string, error) {
	var fields productFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	err := validate.Struct(fields)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing, nil
}

// AddProductHandler stores the posted JSON object as a product.
func AddProductHandler(store ProductStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			raw = []byte("{}")
		}

		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Body must be a JSON object"})
			return
		}

		missing, err := missingFields(raw)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if len(missing) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Missing fields: " + strings.Join(missing, ", "),
			})
			return
		}

		if err := store.InsertProduct(r.Context(), doc); err != nil {
			log.Printf("%s❌ Failed to add product: %v", logging.Prefix(r.Context()), err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Product added successfully"})
	}
}

// ListProductsHandler returns every stored product as a JSON array.
func ListProductsHandler(store ProductStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := store.ListProducts(r.Context())
		if err != nil {
			log.Printf("%s❌ Failed to list products: %v", logging.Prefix(r.Context()), err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}
