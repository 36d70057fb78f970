package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/user",
		Summary:     "Get current user",
		Description: "Returns the current user, provisioning them on first contact",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteCurrentUser",
		Method:        http.MethodDelete,
		Path:          "/api/v1/user",
		Summary:       "Delete current user",
		Description:   "Deletes the current user and every book they own",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteCurrentUser)
}

// UserResponse contains user data in API responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	ExternalUID string    `json:"external_uid" doc:"Identity provider principal"`
	CreatedAt   time.Time `json:"created_at" doc:"Provisioning time"`
}

// GetCurrentUserInput contains parameters for fetching the current user.
type GetCurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// DeleteCurrentUserInput contains parameters for deleting the current user.
type DeleteCurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// DeleteCurrentUserOutput is the empty 204 response.
type DeleteCurrentUserOutput struct{}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *GetCurrentUserInput) (*UserOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return &UserOutput{
		Body: UserResponse{
			ID:          user.ID,
			ExternalUID: user.ExternalUID,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}

func (s *Server) handleDeleteCurrentUser(ctx context.Context, input *DeleteCurrentUserInput) (*DeleteCurrentUserOutput, error) {
	// Delete must not provision a user just to remove them, so the
	// token is verified here without the resolve-or-create step.
	if input.Authorization == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}
	parts := strings.SplitN(input.Authorization, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}
	externalUID, err := s.verifier.Verify(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	if err := s.services.Identity.Delete(ctx, externalUID); err != nil {
		return nil, err
	}
	return &DeleteCurrentUserOutput{}, nil
}
