package payment

import "context"

// Provider provisions customer records with the payment provider.
// Implementations must be safe for concurrent use.
type Provider interface {
	// IsConfigured reports whether the provider has credentials. Callers
	// skip provisioning entirely when it returns false.
	IsConfigured() bool

	// CreateCustomer creates a customer object and returns its id.
	CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error)
}
