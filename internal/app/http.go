package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/handler"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/login"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/provider"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/provider/apple"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/provider/google"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/verifier"
	"github.com/miky21x21/tribal-fashion-sub001/internal/config"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
	"github.com/miky21x21/tribal-fashion-sub001/internal/middleware"
	"github.com/miky21x21/tribal-fashion-sub001/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	accountsClient := accounts.New(cfg.AccountsBaseURL, cfg.AccountsTimeout)
	tokens := session.NewTokenVerifier(cfg.SessionSecret)

	chain := verifier.NewChain(
		verifier.NewBearerStrategy(accountsClient),
		verifier.NewSessionTokenStrategy(tokens),
	)

	var providers []provider.Provider

	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	} else {
		logger.Warn("google login disabled, no client id configured", nil)
	}

	if cfg.AppleClientID != "" {
		appleProvider, err := apple.New(ctx, cfg.AppleClientID)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, appleProvider)
	} else {
		logger.Warn("apple login disabled, no client id configured", nil)
	}

	registry := provider.NewRegistry(providers...)
	dispatcher := login.NewDispatcher(accountsClient)

	authHandler := handler.NewHandler(
		registry,
		dispatcher,
		infra.OTPStore,
		infra.SMS,
		chain,
		cfg.DefaultCountryCode,
	)

	gate := middleware.NewGate(chain)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// The gate intercepts every request once. Exempt paths pass untouched;
	// protected paths require a resolved identity.
	router.Use(middleware.GinGate(gate))

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	// Downstream handlers read the identity the gate attached. These echo
	// endpoints stand in for the order/profile services the storefront
	// proxies to.
	api := router.Group("/api")

	api.GET("/orders", func(c *gin.Context) {
		identity, _ := middleware.IdentityFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"success": true,
			"orders":  []any{},
			"userId":  identity.ID,
		})
	})

	api.GET("/profile", func(c *gin.Context) {
		identity, _ := middleware.IdentityFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"success": true,
			"user": gin.H{
				"id":        identity.ID,
				"email":     identity.Email,
				"firstName": identity.FirstName,
				"lastName":  identity.LastName,
				"role":      identity.Role,
				"tokenKind": identity.TokenKind,
			},
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}
