package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 2*time.Second), server
}

func TestLookupSuccess(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/12345.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"code": "12345",
			"product": {
				"product_name": "Oat Bar",
				"generic_name": "Cereal snack bar",
				"image_url": "https://images.example.com/12345.jpg",
				"categories": "Snacks"
			}
		}`))
	})
	defer server.Close()

	info, err := client.Lookup(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if info.Name != "Oat Bar" {
		t.Errorf("Expected name Oat Bar, got %q", info.Name)
	}
	if info.Description != "Cereal snack bar" {
		t.Errorf("Expected generic name as description, got %q", info.Description)
	}
	if info.ImageURL != "https://images.example.com/12345.jpg" {
		t.Errorf("Unexpected image URL: %q", info.ImageURL)
	}
	if info.Barcode != "12345" {
		t.Errorf("Expected requested barcode, got %q", info.Barcode)
	}
}

func TestLookupBrandsFallbackForDescription(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"product_name": "Oat Bar", "brands": "Acme"}}`))
	})
	defer server.Close()

	info, err := client.Lookup(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info.Description != "Acme" {
		t.Errorf("Expected brands fallback, got %q", info.Description)
	}
}

func TestLookupHTTPNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "12345")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestLookupStatusZeroIsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "12345")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestLookupMissingNameIsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"product_name": "   "}}`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "12345")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for blank name, got %v", err)
	}
}

func TestLookupServerErrorIsGeneric(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "12345")
	if err == nil {
		t.Fatal("Expected an error for 500 response")
	}
	if errors.Is(err, ErrProductNotFound) {
		t.Error("Server errors must not be reported as not-found")
	}
}

func TestLookupMalformedPayloadIsGeneric(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": `))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "12345")
	if err == nil {
		t.Fatal("Expected an error for malformed payload")
	}
	if errors.Is(err, ErrProductNotFound) {
		t.Error("Malformed payloads must not be reported as not-found")
	}
}

func TestLookupEscapesBarcode(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"status": 1, "product": {"product_name": "Oat Bar"}}`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "a/b c")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if gotPath != "/a%2Fb%20c.json" {
		t.Errorf("Barcode not path-escaped: %s", gotPath)
	}
}
