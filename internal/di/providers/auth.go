package providers

import (
	"github.com/samber/do/v2"

	"github.com/quicklibapp/quicklib-server/internal/auth"
	"github.com/quicklibapp/quicklib-server/internal/config"
	"github.com/quicklibapp/quicklib-server/internal/logger"
)

// ProvideVerifier provides the identity token verifier.
//
// In production the identity provider's public key comes from config.
// In development, when no key is configured, a local keypair is loaded
// or generated under the data directory so cmd/seed and local clients
// can mint their own tokens.
func ProvideVerifier(i do.Injector) (*auth.Verifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	publicKeyHex := cfg.Auth.PublicKeyHex
	if publicKeyHex == "" {
		_, generated, err := auth.LoadOrGenerateKeypair(cfg.Database.DataPath)
		if err != nil {
			return nil, err
		}
		publicKeyHex = generated
		log.Warn("No identity provider key configured, using local dev keypair",
			"data_path", cfg.Database.DataPath,
		)
	}

	verifier, err := auth.NewVerifier(publicKeyHex, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return nil, err
	}

	log.Info("Identity verifier ready",
		"issuer", cfg.Auth.Issuer,
		"audience", cfg.Auth.Audience,
	)
	return verifier, nil
}
