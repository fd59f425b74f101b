package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/auth/credentials"
	"github.com/Kirito514/unilib/internal/auth/handler"
	"github.com/Kirito514/unilib/internal/auth/resolver"
	"github.com/Kirito514/unilib/internal/config"
	"github.com/Kirito514/unilib/internal/hemis/provider"
	"github.com/Kirito514/unilib/internal/hemis/provider/hemisapi"
	"github.com/Kirito514/unilib/internal/hemis/provider/mock"
	hemissync "github.com/Kirito514/unilib/internal/hemis/sync"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/middleware"
	"github.com/Kirito514/unilib/internal/profile"
	"github.com/Kirito514/unilib/internal/session"
	"github.com/Kirito514/unilib/internal/token"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	// The provider is chosen exactly once; nothing downstream knows
	// whether it talks to HEMIS or the canned roster.
	var identityProvider provider.IdentityProvider
	if cfg.UseMockHemis {
		identityProvider = mock.New()
	} else {
		identityProvider = hemisapi.New(cfg.HemisAPIURL, cfg.HemisAPIKey, cfg.HemisTimeout)
	}
	logger.Info("identity provider selected", map[string]any{
		"provider": identityProvider.Name(),
	})

	profileStore := profile.NewPGStore(infra.DB)
	sessionStore := session.NewRedisStore(infra.Redis.Client)

	authHandler := handler.NewHandler(
		identityProvider,
		resolver.NewStoreResolver(profileStore),
		profileStore,
		credentials.NewService(infra.DB),
		hemissync.New(identityProvider, profileStore),
		token.NewManager(identityProvider),
		sessionStore,
		cfg.SessionTTL,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(router, authMiddleware)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
