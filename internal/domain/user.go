// Package domain contains the core business entities for the QuickLib book tracker.
package domain

import "time"

// User is a local account provisioned lazily from an external identity.
// The external uid is the verified principal identifier supplied by the
// identity provider; it is unique across all users and never changes.
type User struct {
	ID          string    `json:"id"`
	ExternalUID string    `json:"external_uid"`
	CreatedAt   time.Time `json:"created_at"`
}
