// Package auth verifies identity-provider tokens and manages dev key material.
//
// QuickLib does not mint production credentials. The identity provider issues
// PASETO v4.public tokens signed with its Ed25519 key; the server verifies the
// signature and standard claims and extracts the subject as the principal uid.
package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/quicklibapp/quicklib-server/internal/id"
)

// Verifier validates PASETO v4.public tokens issued by the identity provider.
type Verifier struct {
	publicKey paseto.V4AsymmetricPublicKey
	issuer    string
	audience  string
}

// NewVerifier creates a verifier for the given hex-encoded Ed25519 public key.
func NewVerifier(publicKeyHex, issuer, audience string) (*Verifier, error) {
	key, err := paseto.NewV4AsymmetricPublicKeyFromHex(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid identity provider public key: %w", err)
	}

	return &Verifier{
		publicKey: key,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// Verify checks the token signature and standard claims.
// Returns the token subject, which is the verified principal uid.
func (v *Verifier) Verify(tokenString string) (string, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(v.audience))
	parser.AddRule(paseto.IssuedBy(v.issuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Public(v.publicKey, tokenString, nil)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}

// Issuer signs identity tokens. Used in development mode, by cmd/seed, and in
// tests; production deployments verify against the real provider's key and
// never construct an Issuer.
type Issuer struct {
	secretKey     paseto.V4AsymmetricSecretKey
	issuer        string
	audience      string
	tokenDuration time.Duration
}

// NewIssuer creates an issuer from a hex-encoded Ed25519 secret key.
func NewIssuer(secretKeyHex, issuer, audience string, tokenDuration time.Duration) (*Issuer, error) {
	key, err := paseto.NewV4AsymmetricSecretKeyFromHex(secretKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid identity secret key: %w", err)
	}

	return &Issuer{
		secretKey:     key,
		issuer:        issuer,
		audience:      audience,
		tokenDuration: tokenDuration,
	}, nil
}

// IssueToken signs a token for the given principal uid.
func (i *Issuer) IssueToken(principalUID string) (string, error) {
	if principalUID == "" {
		return "", errors.New("principal uid must not be empty")
	}

	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(i.issuer)
	token.SetSubject(principalUID)
	token.SetAudience(i.audience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(i.tokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	return token.V4Sign(i.secretKey, nil), nil
}

// PublicKeyHex returns the hex-encoded public half of the signing key.
func (i *Issuer) PublicKeyHex() string {
	return i.secretKey.Public().ExportHex()
}

// SecretKeyHex returns the hex-encoded signing key.
func (i *Issuer) SecretKeyHex() string {
	return i.secretKey.ExportHex()
}
