// Package service contains the business logic between the HTTP layer
// and the store. Services receive the acting user explicitly; nothing
// is smuggled through context values.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/quicklibapp/quicklib-server/internal/domain"
	"github.com/quicklibapp/quicklib-server/internal/errors"
	"github.com/quicklibapp/quicklib-server/internal/id"
	"github.com/quicklibapp/quicklib-server/internal/store"
)

// IdentityService maps verified external principals onto local users,
// provisioning a user row on first contact.
type IdentityService struct {
	store  store.Store
	logger *slog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(store store.Store, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		store:  store,
		logger: logger,
	}
}

// ResolveOrCreate returns the local user for an external principal,
// creating one on first sight. Safe under concurrent first requests
// for the same principal: the losing insert re-reads the winner's row.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, externalUID string) (*domain.User, error) {
	if externalUID == "" {
		return nil, errors.Unauthorized("token has no principal identifier")
	}

	user, err := s.store.GetUserByExternalUID(ctx, externalUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to look up user")
	}

	user = &domain.User{
		ID:          id.MustGenerate("usr"),
		ExternalUID: externalUID,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a provisioning race; the other request's row wins.
		return s.store.GetUserByExternalUID(ctx, externalUID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to provision user")
	}

	s.logger.Info("provisioned user",
		"user_id", user.ID,
		"external_uid", externalUID,
	)
	return user, nil
}

// Delete removes the user and, through the store's cascade, every book
// they own. Returns errors.ErrNotFound when no user exists for the
// principal.
func (s *IdentityService) Delete(ctx context.Context, externalUID string) error {
	user, err := s.store.GetUserByExternalUID(ctx, externalUID)
	if errors.Is(err, store.ErrNotFound) {
		return errors.NotFound("user not found")
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to look up user")
	}

	deleted, err := s.store.DeleteUser(ctx, user.ID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete user")
	}
	if !deleted {
		return errors.NotFound("user not found")
	}

	s.logger.Info("deleted user",
		"user_id", user.ID,
		"external_uid", externalUID,
	)
	return nil
}
