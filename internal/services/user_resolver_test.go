package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/formacentre/training-service/internal/auth"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResolver(users *mockUserRepository, provider *mockPaymentProvider) (UserResolver, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	if provider == nil {
		provider = &mockPaymentProvider{}
	}
	return NewUserResolver(users, provider, publisher, testLogger()), publisher
}

func secretaryIdentity() auth.Identity {
	return auth.Identity{
		CasdoorID:  "cas-1",
		Email:      "marie@example.fr",
		Name:       "Marie Dupont",
		RoleClaims: []string{"secretaire"},
	}
}

func existingSecretary() *models.User {
	return &models.User{
		ID:          7,
		CasdoorID:   strPtr("cas-1"),
		Email:       "marie@example.fr",
		FullName:    "Marie Dupont",
		Role:        models.RoleSecretary,
		PrimaryRole: models.RoleSecretary,
		Roles:       []models.UserRole{models.RoleSecretary, models.RoleStudent},
		LastLoginAt: timePtr(time.Now().Add(-5 * time.Minute)),
	}
}

func TestResolve_MissingEmail(t *testing.T) {
	users := &mockUserRepository{}
	resolver, _ := newTestResolver(users, nil)

	_, err := resolver.Resolve(context.Background(), auth.Identity{CasdoorID: "cas-9"})
	if !errors.Is(err, auth.ErrMissingEmail) {
		t.Fatalf("Expected ErrMissingEmail, got %v", err)
	}
	if users.createCalls != 0 || users.updateCalls != 0 {
		t.Errorf("Expected zero writes, got create=%d update=%d", users.createCalls, users.updateCalls)
	}
}

func TestResolve_RecentLoginIsNoOp(t *testing.T) {
	user := existingSecretary()
	users := &mockUserRepository{
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	resolver, _ := newTestResolver(users, nil)

	resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ID != 7 {
		t.Errorf("Expected existing user 7, got %d", resolved.ID)
	}
	if users.updateCalls != 0 {
		t.Errorf("Recent login with unchanged roles must not write, got %d updates", users.updateCalls)
	}
}

func TestResolve_StaleLoginRefreshesOnce(t *testing.T) {
	user := existingSecretary()
	user.LastLoginAt = timePtr(time.Now().Add(-2 * time.Hour))
	users := &mockUserRepository{
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	resolver, _ := newTestResolver(users, nil)

	before := time.Now()
	if _, err := resolver.Resolve(context.Background(), secretaryIdentity()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if users.updateCalls != 1 {
		t.Fatalf("Expected exactly one update, got %d", users.updateCalls)
	}
	if user.LastLoginAt == nil || user.LastLoginAt.Before(before) {
		t.Error("Expected last login timestamp to be refreshed")
	}
}

func TestResolve_RoleChangeTriggersSync(t *testing.T) {
	user := existingSecretary()
	users := &mockUserRepository{
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	resolver, _ := newTestResolver(users, nil)

	identity := secretaryIdentity()
	identity.RoleClaims = []string{"admin"}

	resolved, err := resolver.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if users.updateCalls != 1 {
		t.Fatalf("Expected one update on role change, got %d", users.updateCalls)
	}
	if resolved.PrimaryRole != models.RoleAdmin {
		t.Errorf("Expected primary admin, got %s", resolved.PrimaryRole)
	}
	if !resolved.HasRole(models.RoleAdmin) {
		t.Error("Expected admin in role set")
	}
}

func TestResolve_ProfileFieldsFirstTouchWins(t *testing.T) {
	user := existingSecretary()
	user.LastLoginAt = timePtr(time.Now().Add(-2 * time.Hour))
	user.FirstName = strPtr("Marie-Claire")
	users := &mockUserRepository{
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	resolver, _ := newTestResolver(users, nil)

	identity := secretaryIdentity()
	identity.GivenName = "Marie"
	identity.Phone = "+33611111111"

	resolved, err := resolver.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if *resolved.FirstName != "Marie-Claire" {
		t.Errorf("Locally set first name must not be overwritten, got %s", *resolved.FirstName)
	}
	if resolved.Phone == nil || *resolved.Phone != "+33611111111" {
		t.Error("Empty phone should be filled from the identity provider")
	}
}

func TestResolve_LookupErrorFallsThroughToCreate(t *testing.T) {
	users := &mockUserRepository{
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, errStorage
		},
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, errStorage
		},
	}
	resolver, _ := newTestResolver(users, nil)

	resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
	if err != nil {
		t.Fatalf("Lookup failures must not block login: %v", err)
	}
	if users.createCalls != 1 {
		t.Errorf("Expected a create after failed lookups, got %d", users.createCalls)
	}
	if resolved.Email != "marie@example.fr" {
		t.Errorf("Unexpected created user: %+v", resolved)
	}
}

func TestResolve_NewUserDefaults(t *testing.T) {
	users := &mockUserRepository{}
	resolver, publisher := newTestResolver(users, nil)

	identity := auth.Identity{
		Email:      "nouveau@example.fr",
		RoleClaims: nil,
	}

	resolved, err := resolver.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if resolved.FullName != "Utilisateur" {
		t.Errorf("Expected fallback display name, got %q", resolved.FullName)
	}
	if resolved.CasdoorID == nil || *resolved.CasdoorID != "nouveau@example.fr" {
		t.Error("Expected email used as external id when the subject is absent")
	}
	if resolved.PrimaryRole != models.RoleStudent {
		t.Errorf("Expected student primary, got %s", resolved.PrimaryRole)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserProvisioned {
		t.Fatalf("Expected one user.provisioned event, got %v", published)
	}
}

func TestResolve_ConcurrentCreateReusesExisting(t *testing.T) {
	existing := existingSecretary()
	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *models.User) error {
			return errors.New("duplicate key value violates unique constraint")
		},
		getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, repositories.ErrNotFound
		},
	}
	// The first email lookup misses so the resolver attempts a create;
	// the retry after the duplicate-key failure hits the row.
	emailLookups := 0
	users.getByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		emailLookups++
		if emailLookups == 1 {
			return nil, repositories.ErrNotFound
		}
		return existing, nil
	}
	resolver, _ := newTestResolver(users, nil)

	resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ID != existing.ID {
		t.Errorf("Expected the concurrently created row, got %+v", resolved)
	}
}

func TestResolve_StripeProvisioning(t *testing.T) {
	t.Run("success persists customer id", func(t *testing.T) {
		user := existingSecretary()
		users := &mockUserRepository{
			getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return user, nil
			},
		}
		provider := &mockPaymentProvider{configured: true, customerID: "cus_123"}
		resolver, _ := newTestResolver(users, provider)

		resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if resolved.StripeCustomerID == nil || *resolved.StripeCustomerID != "cus_123" {
			t.Error("Expected stripe customer id to be set")
		}
		if users.updateCalls != 1 {
			t.Errorf("Expected one update persisting the customer id, got %d", users.updateCalls)
		}
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		user := existingSecretary()
		users := &mockUserRepository{
			getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return user, nil
			},
		}
		provider := &mockPaymentProvider{configured: true, err: errors.New("stripe down")}
		resolver, _ := newTestResolver(users, provider)

		resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
		if err != nil {
			t.Fatalf("Provider failure must not fail login: %v", err)
		}
		if resolved.StripeCustomerID != nil {
			t.Error("Customer id must stay empty after a provider failure")
		}
	})

	t.Run("unconfigured provider is skipped", func(t *testing.T) {
		user := existingSecretary()
		users := &mockUserRepository{
			getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return user, nil
			},
		}
		provider := &mockPaymentProvider{configured: false}
		resolver, _ := newTestResolver(users, provider)

		if _, err := resolver.Resolve(context.Background(), secretaryIdentity()); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if provider.calls != 0 {
			t.Errorf("Unconfigured provider must not be called, got %d calls", provider.calls)
		}
	})

	t.Run("existing customer id is not reprovisioned", func(t *testing.T) {
		user := existingSecretary()
		user.StripeCustomerID = strPtr("cus_existing")
		users := &mockUserRepository{
			getByCasdoorIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return user, nil
			},
		}
		provider := &mockPaymentProvider{configured: true, customerID: "cus_new"}
		resolver, _ := newTestResolver(users, provider)

		resolved, err := resolver.Resolve(context.Background(), secretaryIdentity())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if *resolved.StripeCustomerID != "cus_existing" {
			t.Error("Existing customer id must be kept")
		}
		if provider.calls != 0 {
			t.Errorf("Provider must not be called again, got %d calls", provider.calls)
		}
	})
}
