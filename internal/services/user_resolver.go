package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/formacentre/training-service/internal/auth"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/payment"
	"github.com/formacentre/training-service/internal/repositories"
)

// loginRefreshInterval bounds how often a login refreshes last_login_at.
// This throttles write volume, it is not a correctness requirement.
const loginRefreshInterval = time.Hour

// fallbackDisplayName is used when the provider supplies no name at all
const fallbackDisplayName = "Utilisateur"

// UserResolver reconciles an authenticated Casdoor identity against the
// local user table: find-or-create, role sync, profile fill-in, and
// best-effort Stripe customer provisioning.
type UserResolver interface {
	Resolve(ctx context.Context, identity auth.Identity) (*models.User, error)
}

type userResolver struct {
	users     repositories.UserRepository
	payments  payment.Provider
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewUserResolver wires the resolver. The payment provider may be
// unconfigured; the publisher may be a no-op.
func NewUserResolver(users repositories.UserRepository, payments payment.Provider, publisher events.EventPublisher, logger *slog.Logger) UserResolver {
	return &userResolver{
		users:     users,
		payments:  payments,
		publisher: publisher,
		logger:    logger,
	}
}

func (r *userResolver) Resolve(ctx context.Context, identity auth.Identity) (*models.User, error) {
	if identity.Email == "" {
		return nil, auth.ErrMissingEmail
	}

	roles, primary := auth.MapClaimsToRoles(identity.RoleClaims)

	user := r.findExisting(ctx, identity)
	if user != nil {
		if r.needsUpdate(user, identity, roles, primary) {
			r.applyIdentity(user, identity, roles, primary)
			if err := r.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		r.ensureStripeCustomer(ctx, user)
		return user, nil
	}

	user = r.newUserFromIdentity(identity, roles, primary)
	if err := r.users.Create(ctx, user); err != nil {
		// Another request may have created the row between our lookup and
		// this insert; re-read by email before giving up.
		existing, lookupErr := r.users.GetByEmail(ctx, identity.Email)
		if lookupErr != nil {
			return nil, err
		}
		r.logger.Warn("Concurrent user creation detected, reusing existing row",
			"email", identity.Email)
		user = existing
	} else {
		r.publishProvisioned(ctx, user)
	}

	r.ensureStripeCustomer(ctx, user)
	return user, nil
}

// findExisting looks the user up by casdoor id, then by email for legacy
// rows. Lookup errors are logged and treated as not-found so a storage
// blip never blocks login.
func (r *userResolver) findExisting(ctx context.Context, identity auth.Identity) *models.User {
	if identity.CasdoorID != "" {
		user, err := r.users.GetByCasdoorID(ctx, identity.CasdoorID)
		if err == nil {
			return user
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			r.logger.Error("User lookup by casdoor id failed, treating as not found",
				"error", err, "casdoor_id", identity.CasdoorID)
		}
	}

	user, err := r.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		r.logger.Error("User lookup by email failed, treating as not found",
			"error", err, "email", identity.Email)
	}
	return nil
}

func (r *userResolver) needsUpdate(user *models.User, identity auth.Identity, roles []models.UserRole, primary models.UserRole) bool {
	switch {
	case !auth.SameRoleSet(user.Roles, roles):
		return true
	case user.PrimaryRole != primary:
		return true
	case identity.Name != "" && user.FullName != identity.Name:
		return true
	case user.Email != identity.Email:
		return true
	case identity.CasdoorID != "" && (user.CasdoorID == nil || *user.CasdoorID != identity.CasdoorID):
		return true
	case user.LastLoginAt == nil || time.Since(*user.LastLoginAt) > loginRefreshInterval:
		return true
	}
	return false
}

// applyIdentity overwrites role fields and relinks the identity, but
// first/last name and phone are filled only when currently empty: local
// values win once set.
func (r *userResolver) applyIdentity(user *models.User, identity auth.Identity, roles []models.UserRole, primary models.UserRole) {
	user.Roles = roles
	user.PrimaryRole = primary
	user.Role = primary

	user.Email = identity.Email
	if identity.Name != "" {
		user.FullName = identity.Name
	}
	if identity.CasdoorID != "" {
		user.CasdoorID = &identity.CasdoorID
	}

	if user.FirstName == nil && identity.GivenName != "" {
		given := identity.GivenName
		user.FirstName = &given
	}
	if user.LastName == nil && identity.FamilyName != "" {
		family := identity.FamilyName
		user.LastName = &family
	}
	if user.Phone == nil && identity.Phone != "" {
		phone := identity.Phone
		user.Phone = &phone
	}

	now := time.Now()
	user.LastLoginAt = &now
}

func (r *userResolver) newUserFromIdentity(identity auth.Identity, roles []models.UserRole, primary models.UserRole) *models.User {
	user := &models.User{
		Email:       identity.Email,
		FullName:    identity.Name,
		Roles:       roles,
		PrimaryRole: primary,
		Role:        primary,
	}

	if user.FullName == "" {
		user.FullName = fallbackDisplayName
	}

	// Older Casdoor applications omit the subject id; key on email then
	casdoorID := identity.CasdoorID
	if casdoorID == "" {
		casdoorID = identity.Email
	}
	user.CasdoorID = &casdoorID

	if identity.GivenName != "" {
		given := identity.GivenName
		user.FirstName = &given
	}
	if identity.FamilyName != "" {
		family := identity.FamilyName
		user.LastName = &family
	}
	if identity.Phone != "" {
		phone := identity.Phone
		user.Phone = &phone
	}

	now := time.Now()
	user.LastLoginAt = &now
	return user
}

// ensureStripeCustomer provisions a Stripe customer exactly once per
// user. Failures are logged and swallowed: login must never depend on
// the payment provider being up.
func (r *userResolver) ensureStripeCustomer(ctx context.Context, user *models.User) {
	if user.StripeCustomerID != nil || r.payments == nil || !r.payments.IsConfigured() {
		return
	}

	customerID, err := r.payments.CreateCustomer(ctx, user.Email, user.FullName, map[string]string{
		"user_id": strconv.FormatUint(uint64(user.ID), 10),
	})
	if err != nil {
		r.logger.Warn("Stripe customer provisioning failed, will retry on next login",
			"error", err, "user_id", user.ID)
		return
	}

	user.StripeCustomerID = &customerID
	if err := r.users.Update(ctx, user); err != nil {
		r.logger.Error("Failed to persist stripe customer id",
			"error", err, "user_id", user.ID)
	}
}

func (r *userResolver) publishProvisioned(ctx context.Context, user *models.User) {
	if r.publisher == nil {
		return
	}
	event := &events.Event{
		Type: events.EventUserProvisioned,
		Data: events.UserProvisionedEvent{
			UserID:      user.ID,
			Email:       user.Email,
			PrimaryRole: string(user.PrimaryRole),
		},
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("Failed to publish user.provisioned event", "error", err)
	}
}
