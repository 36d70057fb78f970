package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quicklibapp/quicklib-server/internal/domain"
)

// authenticateRequest validates the Authorization header and returns
// the local user for the token's principal, provisioning one on first
// contact.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	externalUID, err := s.verifier.Verify(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	user, err := s.services.Identity.ResolveOrCreate(ctx, externalUID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
