package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripeProvider_IsConfigured(t *testing.T) {
	if NewStripeProvider("").IsConfigured() {
		t.Error("Empty key must not be configured")
	}
	if !NewStripeProvider("sk_test_abc").IsConfigured() {
		t.Error("Non-empty key must be configured")
	}
}

func TestStripeProvider_CreateCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/customers" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_abc" {
			t.Errorf("Missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if r.PostForm.Get("email") != "marie@example.fr" {
			t.Errorf("Unexpected email: %s", r.PostForm.Get("email"))
		}
		if r.PostForm.Get("metadata[user_id]") != "7" {
			t.Errorf("Unexpected metadata: %v", r.PostForm)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cus_test_1"}`))
	}))
	defer server.Close()

	provider := NewStripeProviderWithBaseURL("sk_test_abc", server.URL)

	id, err := provider.CreateCustomer(context.Background(), "marie@example.fr", "Marie Dupont",
		map[string]string{"user_id": "7"})
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if id != "cus_test_1" {
		t.Errorf("Expected cus_test_1, got %s", id)
	}
}

func TestStripeProvider_CreateCustomer_Errors(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		provider := NewStripeProvider("")
		if _, err := provider.CreateCustomer(context.Background(), "a@b.fr", "", nil); err == nil {
			t.Error("Expected error from unconfigured provider")
		}
	})

	t.Run("api error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		provider := NewStripeProviderWithBaseURL("sk_bad", server.URL)
		if _, err := provider.CreateCustomer(context.Background(), "a@b.fr", "", nil); err == nil {
			t.Error("Expected error on non-200 response")
		}
	})

	t.Run("empty customer id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		provider := NewStripeProviderWithBaseURL("sk_test", server.URL)
		if _, err := provider.CreateCustomer(context.Background(), "a@b.fr", "", nil); err == nil {
			t.Error("Expected error when response has no id")
		}
	})
}
