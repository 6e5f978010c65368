package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/dto"
	"github.com/SscSPs/chatledger/internal/middleware"
	"github.com/SscSPs/chatledger/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const adminRateLimit = "120-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return fmt.Errorf("failed to register validators: %w", err)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupWebhookRoutes(r, cfg, services); err != nil {
		return err
	}
	return setupAPIV1Routes(r, cfg, services)
}

func setupWebhookRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	rateLimit := func(c *gin.Context) { c.Next() }
	if cfg.WebhookRateLimit != "" {
		lim, err := middleware.NewMemoryLimiter(cfg.WebhookRateLimit)
		if err != nil {
			return err
		}
		rateLimit = middleware.RateLimit(lim)
	}

	jsonSignature := middleware.BodySignature(cfg.WebhookAuthToken)
	if cfg.WebhookAuthToken == "" && cfg.IsProduction {
		slog.Warn("WEBHOOK_AUTH_TOKEN is not set, JSON webhook route disabled")
		jsonSignature = nil
	}

	registerWebhookRoutes(r,
		services.Dispatcher,
		cfg.RequestTimeout,
		middleware.TwilioSignature(cfg.WebhookAuthToken, cfg.WebhookPublicURL),
		jsonSignature,
		middleware.SenderAllowList(cfg.WebhookAllowedSenders),
		rateLimit,
	)
	return nil
}

// setupAPIV1Routes configures the /api/v1 admin group behind JWT auth.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	lim, err := middleware.NewMemoryLimiter(adminRateLimit)
	if err != nil {
		return err
	}
	chain := []gin.HandlerFunc{}
	if len(cfg.AdminCORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.AdminCORSOrigins
		corsCfg.AddAllowHeaders("Authorization")
		chain = append(chain, cors.New(corsCfg))
	}
	chain = append(chain, middleware.GinMiddlewarize(lim), middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	v1 := r.Group("/api/v1", chain...)
	if len(cfg.AdminCORSOrigins) > 0 {
		// Preflights are answered by the cors middleware before auth runs.
		v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	registerOnboardingRoutes(v1, services.Onboarding)
	return nil
}
